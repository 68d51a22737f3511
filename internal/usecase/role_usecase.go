package usecase

import (
	"context"

	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/ferdian3456/leaguebot/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type ensuredRole struct {
	role    model.Role
	created bool
}

// RoleUsecase implements lookup-or-create for roles. Concurrent calls for the same name inside
// this process share one lookup and at most one create.
type RoleUsecase struct {
	GuildRepository repository.GuildRepository
	Log             *zap.Logger
	group           singleflight.Group
}

func NewRoleUsecase(guildRepository repository.GuildRepository, zap *zap.Logger) *RoleUsecase {
	return &RoleUsecase{
		GuildRepository: guildRepository,
		Log:             zap,
	}
}

func (usecase *RoleUsecase) FindRole(ctx context.Context, guildID string, name string) (model.Role, error) {
	roles, err := usecase.GuildRepository.ListRoles(ctx, guildID)
	if err != nil {
		return model.Role{}, err
	}

	role, ok := model.NewGuildRoles(guildID, roles).ByName(name)
	if !ok {
		return model.Role{}, model.ErrRoleNotFound
	}

	return role, nil
}

func (usecase *RoleUsecase) EnsureRole(ctx context.Context, guildID string, name string) (model.Role, bool, error) {
	value, err, _ := usecase.group.Do(guildID+"/"+name, func() (interface{}, error) {
		role, err := usecase.FindRole(ctx, guildID, name)
		if err == nil {
			return ensuredRole{role: role}, nil
		}
		if err != model.ErrRoleNotFound {
			return nil, err
		}

		role, err = usecase.GuildRepository.CreateRole(ctx, guildID, name)
		if err != nil {
			return nil, err
		}

		usecase.Log.Info("created role", zap.String("guild_id", guildID), zap.String("role", name))
		return ensuredRole{role: role, created: true}, nil
	})
	if err != nil {
		return model.Role{}, false, err
	}

	ensured := value.(ensuredRole)
	return ensured.role, ensured.created, nil
}
