package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ferdian3456/leaguebot/internal/constant"
	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/ferdian3456/leaguebot/internal/policy"
	"github.com/ferdian3456/leaguebot/internal/repository"
	"go.uber.org/zap"
)

type ChannelFailure struct {
	ChannelID   string
	ChannelName string
	Err         error
}

// SweepResult is the outcome of a best-effort pass over every channel of the guild.
type SweepResult struct {
	Updated   []string
	Unchanged int
	Failures  []ChannelFailure
}

func (r SweepResult) Err() error {
	errs := make([]error, 0, len(r.Failures))
	for _, failure := range r.Failures {
		errs = append(errs, fmt.Errorf("channel %s: %w", failure.ChannelName, failure.Err))
	}
	return errors.Join(errs...)
}

type AccessUsecase struct {
	GuildRepository repository.GuildRepository
	Catalog         *model.Catalog
	Log             *zap.Logger
}

func NewAccessUsecase(guildRepository repository.GuildRepository, catalog *model.Catalog, zap *zap.Logger) *AccessUsecase {
	return &AccessUsecase{
		GuildRepository: guildRepository,
		Catalog:         catalog,
		Log:             zap,
	}
}

// MemberState reads the member and the guild roles and derives the current onboarding state.
func (usecase *AccessUsecase) MemberState(ctx context.Context, guildID string, memberID string) (model.Member, model.MemberState, error) {
	member, err := usecase.GuildRepository.GetMember(ctx, guildID, memberID)
	if err != nil {
		return member, model.MemberState{}, err
	}

	roles, err := usecase.GuildRepository.ListRoles(ctx, guildID)
	if err != nil {
		return member, model.MemberState{}, err
	}

	state := policy.DeriveState(member, model.NewGuildRoles(guildID, roles), usecase.Catalog)
	return member, state, nil
}

// ApplyPolicy pushes the member's policy decision onto every managed channel, writing only where
// the current overwrite differs. A failing channel does not stop the sweep.
func (usecase *AccessUsecase) ApplyPolicy(ctx context.Context, guildID string, memberID string) (SweepResult, error) {
	result := SweepResult{}

	_, state, err := usecase.MemberState(ctx, guildID, memberID)
	if err != nil {
		return result, err
	}

	channels, err := usecase.GuildRepository.ListChannels(ctx, guildID)
	if err != nil {
		return result, err
	}

	for _, channel := range channels {
		desired, managed := policy.MemberDecision(memberID, state, channel)
		if !managed {
			continue
		}

		current, _ := channel.Overwrite(model.TargetMember, memberID)
		if current.Equal(desired) {
			result.Unchanged++
			continue
		}

		err = usecase.GuildRepository.SetOverwrite(ctx, channel.ID, desired)
		if err != nil {
			result.Failures = append(result.Failures, ChannelFailure{ChannelID: channel.ID, ChannelName: channel.Name, Err: err})
			continue
		}
		result.Updated = append(result.Updated, channel.Name)
	}

	usecase.Log.Debug("applied member policy",
		zap.String("guild_id", guildID),
		zap.String("member_id", memberID),
		zap.Stringer("stage", state.Stage),
		zap.Int("updated", len(result.Updated)),
		zap.Int("unchanged", result.Unchanged),
		zap.Int("failed", len(result.Failures)),
	)

	return result, nil
}

// ApplyRoleBaseline writes the role-level baseline for @everyone and the structural roles on every
// managed channel. Roles that do not exist are skipped.
func (usecase *AccessUsecase) ApplyRoleBaseline(ctx context.Context, guildID string) (SweepResult, error) {
	result := SweepResult{}

	roles, err := usecase.GuildRepository.ListRoles(ctx, guildID)
	if err != nil {
		return result, err
	}
	index := model.NewGuildRoles(guildID, roles)

	targets := []model.Role{{ID: index.EveryoneID, Name: ""}}
	for _, name := range constant.STRUCTURAL_ROLES {
		if role, ok := index.ByName(name); ok {
			targets = append(targets, role)
		}
	}

	channels, err := usecase.GuildRepository.ListChannels(ctx, guildID)
	if err != nil {
		return result, err
	}

	for _, channel := range channels {
		class := policy.Classify(channel)
		if class == policy.ClassUnmanaged {
			continue
		}

		touched, failed := false, false
		for _, role := range targets {
			desired, ok := policy.RoleBaseline(class, role.Name, role.ID)
			if !ok {
				continue
			}

			current, _ := channel.Overwrite(model.TargetRole, role.ID)
			if current.Equal(desired) {
				continue
			}

			err = usecase.GuildRepository.SetOverwrite(ctx, channel.ID, desired)
			if err != nil {
				result.Failures = append(result.Failures, ChannelFailure{ChannelID: channel.ID, ChannelName: channel.Name, Err: err})
				failed = true
				continue
			}
			touched = true
		}

		switch {
		case touched:
			result.Updated = append(result.Updated, channel.Name)
		case !failed:
			result.Unchanged++
		}
	}

	return result, nil
}
