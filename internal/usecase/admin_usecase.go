package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ferdian3456/leaguebot/internal/constant"
	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/ferdian3456/leaguebot/internal/repository"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const defaultRulesURL = "https://docs.google.com/document/d/1O7-63eLjAuyNGR3VeqJu36Y-rFt6gT1FndROiMtSnn8/edit?usp=sharing"

// AdminUsecase backs the text commands. Outcomes go to #bot-logs; a *model.ValidationError is
// meant to be shown in the invoking channel.
type AdminUsecase struct {
	GuildRepository   repository.GuildRepository
	AccessUsecase     *AccessUsecase
	RoleUsecase       *RoleUsecase
	TicketUsecase     *TicketUsecase
	OnboardingUsecase *OnboardingUsecase
	BotLogUsecase     *BotLogUsecase
	Catalog           *model.Catalog
	Log               *zap.Logger
	Config            *koanf.Koanf
}

func NewAdminUsecase(guildRepository repository.GuildRepository, accessUsecase *AccessUsecase, roleUsecase *RoleUsecase, ticketUsecase *TicketUsecase, onboardingUsecase *OnboardingUsecase, botLogUsecase *BotLogUsecase, catalog *model.Catalog, zap *zap.Logger, koanf *koanf.Koanf) *AdminUsecase {
	return &AdminUsecase{
		GuildRepository:   guildRepository,
		AccessUsecase:     accessUsecase,
		RoleUsecase:       roleUsecase,
		TicketUsecase:     ticketUsecase,
		OnboardingUsecase: onboardingUsecase,
		BotLogUsecase:     botLogUsecase,
		Catalog:           catalog,
		Log:               zap,
		Config:            koanf,
	}
}

func wrongChannel(name string) error {
	return &model.ValidationError{
		Code:    constant.ERR_WRONG_CHANNEL_ERROR,
		Message: fmt.Sprintf("Please use this command in #%s.", name),
		Param:   "channel",
	}
}

func (usecase *AdminUsecase) channelName(ctx context.Context, guildID string, channelID string) (string, error) {
	channels, err := usecase.GuildRepository.ListChannels(ctx, guildID)
	if err != nil {
		return "", err
	}

	for _, channel := range channels {
		if channel.ID == channelID {
			return channel.Name, nil
		}
	}
	return "", model.ErrChannelNotFound
}

func (usecase *AdminUsecase) PostRules(ctx context.Context, guildID string, channelID string) error {
	name, err := usecase.channelName(ctx, guildID, channelID)
	if err != nil && !errors.Is(err, model.ErrChannelNotFound) {
		return err
	}
	if name != constant.RULES_CHANNEL {
		return wrongChannel(constant.RULES_CHANNEL)
	}

	rulesURL := defaultRulesURL
	if usecase.Config != nil && usecase.Config.String("RULES_URL") != "" {
		rulesURL = usecase.Config.String("RULES_URL")
	}

	content := fmt.Sprintf("Please read the rules and react with %s to get access to the league channels.\nFull rules: %s", constant.RULES_EMOJI, rulesURL)
	messageID, err := usecase.GuildRepository.SendMessage(ctx, channelID, model.OutgoingMessage{Content: content})
	if err != nil {
		return err
	}

	return usecase.GuildRepository.AddReaction(ctx, channelID, messageID, constant.RULES_EMOJI)
}

func (usecase *AdminUsecase) PostTeamSelection(ctx context.Context, guildID string, channelID string, author model.Member) error {
	name, err := usecase.channelName(ctx, guildID, channelID)
	if err != nil && !errors.Is(err, model.ErrChannelNotFound) {
		return err
	}
	if name != constant.TEAM_SELECTION_CHANNEL {
		usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("%s tried to post team selection in wrong channel.", author.Mention()))
		return nil
	}

	for _, prompt := range usecase.OnboardingUsecase.TeamPrompts() {
		_, err = usecase.GuildRepository.SendMessage(ctx, channelID, prompt)
		if err != nil {
			return err
		}
	}

	return nil
}

func (usecase *AdminUsecase) PostChangeNickname(ctx context.Context, guildID string, channelID string) error {
	name, err := usecase.channelName(ctx, guildID, channelID)
	if err != nil && !errors.Is(err, model.ErrChannelNotFound) {
		return err
	}
	if name != constant.TEAM_SELECTION_CHANNEL {
		return wrongChannel(constant.TEAM_SELECTION_CHANNEL)
	}

	_, err = usecase.GuildRepository.SendMessage(ctx, channelID, model.OutgoingMessage{
		Content: "Want to change your team or nickname? Click below!",
		Button: &model.Button{
			CustomID: constant.TEAM_CHANGE_ID,
			Label:    "Change/Reset Nickname & Team",
		},
	})
	return err
}

func (usecase *AdminUsecase) SetupBasicRoles(ctx context.Context, guildID string) error {
	var created []string
	for _, name := range constant.STRUCTURAL_ROLES {
		_, isNew, err := usecase.RoleUsecase.EnsureRole(ctx, guildID, name)
		if err != nil {
			usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("Failed to create role %s: %v", name, err))
			return err
		}
		if isNew {
			created = append(created, name)
		}
	}

	if len(created) == 0 {
		usecase.BotLogUsecase.Send(ctx, guildID, "League Member, Admin and Media Team roles already exist.")
		return nil
	}

	usecase.BotLogUsecase.SendList(ctx, guildID, "Created roles: ", created)
	return nil
}

func (usecase *AdminUsecase) SetupTeamRoles(ctx context.Context, guildID string) error {
	var created []string
	var failures []error

	for _, team := range usecase.Catalog.Teams() {
		_, isNew, err := usecase.RoleUsecase.EnsureRole(ctx, guildID, team.Name)
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", team.Name, err))
			continue
		}
		if isNew {
			created = append(created, team.Name)
		}
	}

	if len(created) == 0 && len(failures) == 0 {
		usecase.BotLogUsecase.Send(ctx, guildID, "All team roles already exist.")
	}
	if len(created) > 0 {
		usecase.BotLogUsecase.SendList(ctx, guildID, "Created roles: ", created)
	}
	if len(failures) > 0 {
		err := errors.Join(failures...)
		usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("Failed to create team roles: %v", err))
		return err
	}

	return nil
}

type roleChange struct {
	roleName    string
	grant       bool
	requires    string
	alreadyDone string
	notHeld     string
	done        string
}

var (
	assignAdmin = roleChange{
		roleName:    constant.ADMIN_ROLE,
		grant:       true,
		alreadyDone: "%s is already an Admin.",
		done:        "%s has been added to Admins.",
	}
	assignMedia = roleChange{
		roleName:    constant.MEDIA_ROLE,
		grant:       true,
		requires:    constant.LEAGUE_MEMBER_ROLE,
		alreadyDone: "%s is already in the Media Team.",
		done:        "%s has been added to the Media Team.",
	}
	removeAdmin = roleChange{
		roleName: constant.ADMIN_ROLE,
		notHeld:  "%s is not an Admin.",
		done:     "%s has been removed from Admins.",
	}
	removeMedia = roleChange{
		roleName: constant.MEDIA_ROLE,
		notHeld:  "%s is not in the Media Team.",
		done:     "%s has been removed from the Media Team.",
	}
)

func (usecase *AdminUsecase) AssignAdminRole(ctx context.Context, guildID string, memberID string) error {
	return usecase.changeRole(ctx, guildID, memberID, assignAdmin)
}

func (usecase *AdminUsecase) AssignMediaRole(ctx context.Context, guildID string, memberID string) error {
	return usecase.changeRole(ctx, guildID, memberID, assignMedia)
}

func (usecase *AdminUsecase) RemoveAdminRole(ctx context.Context, guildID string, memberID string) error {
	return usecase.changeRole(ctx, guildID, memberID, removeAdmin)
}

func (usecase *AdminUsecase) RemoveMediaRole(ctx context.Context, guildID string, memberID string) error {
	return usecase.changeRole(ctx, guildID, memberID, removeMedia)
}

// changeRole grants or revokes a structural role and re-sweeps the member so the Admin and Media
// overlays follow the role.
func (usecase *AdminUsecase) changeRole(ctx context.Context, guildID string, memberID string, change roleChange) error {
	roles, err := usecase.GuildRepository.ListRoles(ctx, guildID)
	if err != nil {
		return err
	}
	index := model.NewGuildRoles(guildID, roles)

	role, ok := index.ByName(change.roleName)
	if !ok {
		if change.grant {
			usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("%s role does not exist. Run !setup_basic_roles first.", change.roleName))
		} else {
			usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("%s role does not exist.", change.roleName))
		}
		return nil
	}

	member, err := usecase.GuildRepository.GetMember(ctx, guildID, memberID)
	if err != nil {
		return err
	}

	if change.requires != "" {
		required, ok := index.ByName(change.requires)
		if !ok {
			usecase.BotLogUsecase.Send(ctx, guildID, "Required roles do not exist. Run !setup_basic_roles first.")
			return nil
		}
		if !member.HasRole(required.ID) {
			usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("%s is not a %s.", member.Mention(), change.requires))
			return nil
		}
	}

	if change.grant {
		if member.HasRole(role.ID) {
			usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf(change.alreadyDone, member.Mention()))
			return nil
		}
		err = usecase.GuildRepository.AddMemberRole(ctx, guildID, member.ID, role.ID)
	} else {
		if !member.HasRole(role.ID) {
			usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf(change.notHeld, member.Mention()))
			return nil
		}
		err = usecase.GuildRepository.RemoveMemberRole(ctx, guildID, member.ID, role.ID)
	}
	if err != nil {
		usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("Failed to update %s role for %s: %v", change.roleName, member.Mention(), err))
		return err
	}

	result, err := usecase.AccessUsecase.ApplyPolicy(ctx, guildID, member.ID)
	if err == nil {
		err = result.Err()
	}
	if err != nil {
		usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("Failed to update channel access for %s: %v", member.Mention(), err))
	}

	usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf(change.done, member.Mention()))
	return nil
}

// SetupPermissions creates the channels the policy relies on and reapplies the role baseline.
func (usecase *AdminUsecase) SetupPermissions(ctx context.Context, guildID string) error {
	roles, err := usecase.GuildRepository.ListRoles(ctx, guildID)
	if err != nil {
		return err
	}
	index := model.NewGuildRoles(guildID, roles)
	_, hasLeague := index.ByName(constant.LEAGUE_MEMBER_ROLE)
	_, hasAdmin := index.ByName(constant.ADMIN_ROLE)
	if !hasLeague || !hasAdmin {
		usecase.BotLogUsecase.Send(ctx, guildID, "Please run !setup_basic_roles first.")
		return nil
	}

	channels, err := usecase.GuildRepository.ListChannels(ctx, guildID)
	if err != nil {
		return err
	}

	required := []model.ChannelCreate{{Name: constant.STAFF_VOICE_CHANNEL, Kind: model.ChannelKindVoice}}
	for _, name := range constant.MEDIA_CHANNELS {
		required = append(required, model.ChannelCreate{Name: name, Kind: model.ChannelKindText})
	}
	required = append(required, model.ChannelCreate{Name: constant.BOT_LOGS_CHANNEL, Kind: model.ChannelKindText})

	for _, data := range required {
		if _, ok := model.FindChannel(channels, data.Kind, data.Name); ok {
			continue
		}

		_, err = usecase.GuildRepository.CreateChannel(ctx, guildID, data)
		if err != nil {
			usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("Failed to create channel %s: %v", data.Name, err))
			return err
		}
		usecase.Log.Info("created channel", zap.String("guild_id", guildID), zap.String("channel", data.Name))
	}

	result, err := usecase.AccessUsecase.ApplyRoleBaseline(ctx, guildID)
	if err != nil {
		return err
	}

	if len(result.Updated) > 0 {
		usecase.BotLogUsecase.SendList(ctx, guildID, "Permissions set for channels: ", result.Updated)
	} else {
		usecase.BotLogUsecase.Send(ctx, guildID, "Channel permissions are already up to date.")
	}
	if sweepErr := result.Err(); sweepErr != nil {
		usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("Failed to set permissions: %v", sweepErr))
	}

	return nil
}

// CloseTicket returns the message to show in the invoking channel.
func (usecase *AdminUsecase) CloseTicket(ctx context.Context, guildID string, memberID string) (string, error) {
	mention := fmt.Sprintf("<@%s>", memberID)

	err := usecase.TicketUsecase.Close(ctx, guildID, memberID)
	if errors.Is(err, model.ErrTicketNotFound) {
		return fmt.Sprintf("No open ticket found for %s.", mention), nil
	}
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Ticket for %s has been closed.", mention), nil
}
