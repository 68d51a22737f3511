package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/ferdian3456/leaguebot/internal/constant"
	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/minio/minio-go/v7"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type CatalogRepository struct {
	Log      *zap.Logger
	DBObject *minio.Client
}

func NewCatalogRepository(zap *zap.Logger, minio *minio.Client) *CatalogRepository {
	return &CatalogRepository{
		Log:      zap,
		DBObject: minio,
	}
}

func (repository *CatalogRepository) LoadFromFile(path string) (*model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	return ParseCatalog(data)
}

func (repository *CatalogRepository) LoadFromObject(ctx context.Context, bucketName string, objectName string) (*model.Catalog, error) {
	if repository.DBObject == nil {
		return nil, fmt.Errorf("read catalog %s/%s: object storage is not configured", bucketName, objectName)
	}

	object, err := repository.DBObject.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get catalog object %s/%s: %w", bucketName, objectName, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("read catalog object %s/%s: %w", bucketName, objectName, err)
	}

	return ParseCatalog(data)
}

// ParseCatalog reads {"<conference>": [{"ScrapedName": "...", "LogoURL": "..."}]} keeping the
// conference order of the document, and rejects duplicate or reserved team names.
func ParseCatalog(data []byte) (*model.Catalog, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("catalog is not valid json")
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("catalog must be an object keyed by conference")
	}

	var conferences []model.Conference
	seen := make(map[string]string)
	var parseErr error

	root.ForEach(func(key, value gjson.Result) bool {
		conference := model.Conference{Name: key.String()}
		if !value.IsArray() {
			parseErr = fmt.Errorf("conference %q must be a list of teams", conference.Name)
			return false
		}

		for i, record := range value.Array() {
			name := strings.TrimSpace(record.Get("ScrapedName").String())
			if name == "" {
				parseErr = fmt.Errorf("conference %q team %d has no ScrapedName", conference.Name, i)
				return false
			}
			if other, ok := seen[name]; ok {
				parseErr = fmt.Errorf("team %q appears in both %q and %q", name, other, conference.Name)
				return false
			}
			if slices.Contains(constant.STRUCTURAL_ROLES, name) {
				parseErr = fmt.Errorf("team %q collides with a reserved role name", name)
				return false
			}

			seen[name] = conference.Name
			conference.Teams = append(conference.Teams, model.Team{
				Name:    name,
				LogoURL: record.Get("LogoURL").String(),
			})
		}

		conferences = append(conferences, conference)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(seen) == 0 {
		return nil, model.ErrEmptyCatalog
	}

	return model.NewCatalog(conferences), nil
}
