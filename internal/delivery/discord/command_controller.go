package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/ferdian3456/leaguebot/internal/constant"
	"github.com/ferdian3456/leaguebot/internal/middleware"
	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/ferdian3456/leaguebot/internal/repository"
	"github.com/ferdian3456/leaguebot/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Invocation is a parsed text command.
type Invocation struct {
	GuildID   string
	ChannelID string
	Author    model.Member
	Name      string
	Target    string
}

type command struct {
	admin        bool
	targetMember bool
	handle       func(ctx context.Context, controller *CommandController, invocation Invocation) error
}

var commands = map[string]command{
	"post_rules": {handle: func(ctx context.Context, controller *CommandController, invocation Invocation) error {
		return controller.AdminUsecase.PostRules(ctx, invocation.GuildID, invocation.ChannelID)
	}},
	"post_team_selection": {handle: func(ctx context.Context, controller *CommandController, invocation Invocation) error {
		return controller.AdminUsecase.PostTeamSelection(ctx, invocation.GuildID, invocation.ChannelID, invocation.Author)
	}},
	"change_nickname": {handle: func(ctx context.Context, controller *CommandController, invocation Invocation) error {
		return controller.AdminUsecase.PostChangeNickname(ctx, invocation.GuildID, invocation.ChannelID)
	}},
	"assign_admin_role": {admin: true, targetMember: true, handle: func(ctx context.Context, controller *CommandController, invocation Invocation) error {
		return controller.AdminUsecase.AssignAdminRole(ctx, invocation.GuildID, invocation.Target)
	}},
	"assign_media_role": {admin: true, targetMember: true, handle: func(ctx context.Context, controller *CommandController, invocation Invocation) error {
		return controller.AdminUsecase.AssignMediaRole(ctx, invocation.GuildID, invocation.Target)
	}},
	"remove_admin_role": {admin: true, targetMember: true, handle: func(ctx context.Context, controller *CommandController, invocation Invocation) error {
		return controller.AdminUsecase.RemoveAdminRole(ctx, invocation.GuildID, invocation.Target)
	}},
	"remove_media_role": {admin: true, targetMember: true, handle: func(ctx context.Context, controller *CommandController, invocation Invocation) error {
		return controller.AdminUsecase.RemoveMediaRole(ctx, invocation.GuildID, invocation.Target)
	}},
	"setup_basic_roles": {admin: true, handle: func(ctx context.Context, controller *CommandController, invocation Invocation) error {
		return controller.AdminUsecase.SetupBasicRoles(ctx, invocation.GuildID)
	}},
	"setup_team_roles": {admin: true, handle: func(ctx context.Context, controller *CommandController, invocation Invocation) error {
		return controller.AdminUsecase.SetupTeamRoles(ctx, invocation.GuildID)
	}},
	"setup_permissions": {admin: true, handle: func(ctx context.Context, controller *CommandController, invocation Invocation) error {
		return controller.AdminUsecase.SetupPermissions(ctx, invocation.GuildID)
	}},
	"close_ticket": {admin: true, targetMember: true, handle: func(ctx context.Context, controller *CommandController, invocation Invocation) error {
		message, err := controller.AdminUsecase.CloseTicket(ctx, invocation.GuildID, invocation.Target)
		if err != nil {
			return err
		}
		return controller.say(ctx, invocation.ChannelID, message)
	}},
}

type CommandController struct {
	AdminUsecase    *usecase.AdminUsecase
	GuildRepository repository.GuildRepository
	Runner          *middleware.EventRunner
	Log             *zap.Logger
}

func NewCommandController(adminUsecase *usecase.AdminUsecase, guildRepository repository.GuildRepository, runner *middleware.EventRunner, zap *zap.Logger) *CommandController {
	return &CommandController{
		AdminUsecase:    adminUsecase,
		GuildRepository: guildRepository,
		Runner:          runner,
		Log:             zap,
	}
}

// ParseCommand reads "!name [member]". Mentions in either <@id> or <@!id> form and raw ids are
// accepted as the member argument.
func ParseCommand(content string) (name string, target string, ok bool) {
	rest, found := strings.CutPrefix(strings.TrimSpace(content), constant.COMMAND_PREFIX)
	if !found {
		return "", "", false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", "", false
	}

	name = strings.ToLower(fields[0])
	if len(fields) > 1 {
		target = parseMemberID(fields[1])
	}
	return name, target, true
}

func parseMemberID(arg string) string {
	id := strings.TrimPrefix(arg, "<@")
	id = strings.TrimPrefix(id, "!")
	id = strings.TrimSuffix(id, ">")
	if id == "" || strings.Trim(id, "0123456789") != "" {
		return ""
	}
	return id
}

func (controller *CommandController) MessageCreate(s *discordgo.Session, event *discordgo.MessageCreate) {
	if event.Author == nil || event.Author.Bot || event.GuildID == "" {
		return
	}

	name, target, ok := ParseCommand(event.Content)
	if !ok {
		return
	}
	cmd, ok := commands[name]
	if !ok {
		return
	}

	invocation := Invocation{
		GuildID:   event.GuildID,
		ChannelID: event.ChannelID,
		Author:    model.Member{ID: event.Author.ID, Username: event.Author.Username},
		Name:      name,
		Target:    target,
	}
	if event.Member != nil {
		invocation.Author.Nickname = event.Member.Nick
		invocation.Author.RoleIDs = event.Member.Roles
	}

	attrs := []attribute.KeyValue{
		attribute.String("guild_id", event.GuildID),
		attribute.String("author_id", event.Author.ID),
		attribute.String("command", name),
	}
	controller.Runner.Run("command", attrs, func(ctx context.Context, log *zap.Logger) error {
		return controller.dispatch(ctx, log, cmd, invocation)
	})
}

func (controller *CommandController) dispatch(ctx context.Context, log *zap.Logger, cmd command, invocation Invocation) error {
	if cmd.admin {
		isAdmin, err := controller.GuildRepository.IsAdministrator(ctx, invocation.ChannelID, invocation.Author.ID)
		if err != nil {
			return err
		}
		if !isAdmin {
			log.Info("rejected command from non-administrator")
			return controller.say(ctx, invocation.ChannelID, "You do not have permission to use this command.")
		}
	}

	if cmd.targetMember && invocation.Target == "" {
		return controller.say(ctx, invocation.ChannelID, fmt.Sprintf("Please mention a member: %s%s @member", constant.COMMAND_PREFIX, invocation.Name))
	}

	err := cmd.handle(ctx, controller, invocation)
	if err == nil {
		return nil
	}

	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return controller.say(ctx, invocation.ChannelID, validationErr.Message)
	}
	if errors.Is(err, model.ErrMemberNotFound) {
		return controller.say(ctx, invocation.ChannelID, "That member is not in this server.")
	}

	sayErr := controller.say(ctx, invocation.ChannelID, constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE)
	return errors.Join(err, sayErr)
}

func (controller *CommandController) say(ctx context.Context, channelID string, content string) error {
	_, err := controller.GuildRepository.SendMessage(ctx, channelID, model.OutgoingMessage{Content: content})
	return err
}
