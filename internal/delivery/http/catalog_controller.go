package http

import (
	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/ferdian3456/leaguebot/internal/util"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CatalogController struct {
	Catalog *model.Catalog
	Log     *zap.Logger
}

func NewCatalogController(catalog *model.Catalog, zap *zap.Logger) *CatalogController {
	return &CatalogController{
		Catalog: catalog,
		Log:     zap,
	}
}

func (controller *CatalogController) GetCatalog(ctx *fiber.Ctx) error {
	return util.SendSuccessResponseWithData(ctx, model.CatalogResponse{
		TeamCount:   controller.Catalog.TeamCount(),
		Conferences: controller.Catalog.Conferences,
	})
}
