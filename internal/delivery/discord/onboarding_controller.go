package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
	"github.com/ferdian3456/leaguebot/internal/constant"
	"github.com/ferdian3456/leaguebot/internal/middleware"
	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/ferdian3456/leaguebot/internal/usecase"
	"github.com/ferdian3456/leaguebot/internal/util"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const guildNotResolvedMessage = "I couldn't find your server membership. Please use this in the server."

type OnboardingController struct {
	OnboardingUsecase *usecase.OnboardingUsecase
	Runner            *middleware.EventRunner
	Log               *zap.Logger
}

func NewOnboardingController(onboardingUsecase *usecase.OnboardingUsecase, runner *middleware.EventRunner, zap *zap.Logger) *OnboardingController {
	return &OnboardingController{
		OnboardingUsecase: onboardingUsecase,
		Runner:            runner,
		Log:               zap,
	}
}

func (controller *OnboardingController) MemberAdd(s *discordgo.Session, event *discordgo.GuildMemberAdd) {
	if event.User == nil || event.User.Bot {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("guild_id", event.GuildID),
		attribute.String("member_id", event.User.ID),
	}
	controller.Runner.Run("guild_member_add", attrs, func(ctx context.Context, log *zap.Logger) error {
		return controller.OnboardingUsecase.MemberJoined(ctx, event.GuildID, event.User.ID)
	})
}

func (controller *OnboardingController) ReactionAdd(s *discordgo.Session, event *discordgo.MessageReactionAdd) {
	if event.GuildID == "" || isSelf(s, event.UserID) {
		return
	}
	if event.Member != nil && event.Member.User != nil && event.Member.User.Bot {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("guild_id", event.GuildID),
		attribute.String("member_id", event.UserID),
		attribute.String("emoji", event.Emoji.Name),
	}
	controller.Runner.Run("message_reaction_add", attrs, func(ctx context.Context, log *zap.Logger) error {
		return controller.OnboardingUsecase.AcceptRules(ctx, event.GuildID, event.ChannelID, event.UserID, event.Emoji.Name)
	})
}

func (controller *OnboardingController) InteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	if user == nil {
		return
	}

	switch i.Type {
	case discordgo.InteractionMessageComponent:
		controller.handleComponent(s, i, user)
	case discordgo.InteractionModalSubmit:
		controller.handleModal(s, i, user)
	}
}

func (controller *OnboardingController) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, user *discordgo.User) {
	data := i.MessageComponentData()
	attrs := []attribute.KeyValue{
		attribute.String("guild_id", i.GuildID),
		attribute.String("member_id", user.ID),
		attribute.String("custom_id", data.CustomID),
	}

	controller.Runner.Run("interaction_component", attrs, func(ctx context.Context, log *zap.Logger) error {
		switch data.CustomID {
		case constant.TEAM_SELECT_ID:
			if len(data.Values) == 0 {
				return nil
			}
			reply, err := controller.OnboardingUsecase.SelectTeam(ctx, i.GuildID, user.ID, data.Values[0])
			err = controller.respond(ctx, s, i, log, reply, err, "")
			if reply.FollowUp != nil {
				reply.FollowUp(ctx)
			}
			return err

		case constant.TEAM_CHANGE_ID:
			err := deferReply(ctx, s, i)
			if err != nil {
				return err
			}
			reply, err := controller.OnboardingUsecase.ChangeTeam(ctx, i.GuildID, user.ID)
			return controller.editDeferred(ctx, s, i, log, reply, err, "")
		}

		teamName, ok := customIDValue(data.CustomID, constant.NICKNAME_RETRY_ID)
		if !ok {
			log.Debug("ignoring unknown component")
			return nil
		}
		reply := model.Reply{
			Kind:            model.ReplyNicknameModal,
			TeamName:        teamName,
			DefaultNickname: util.DefaultNickname(user.Username, teamName, constant.MAX_NICKNAME),
		}
		return controller.respond(ctx, s, i, log, reply, nil, "")
	})
}

func (controller *OnboardingController) handleModal(s *discordgo.Session, i *discordgo.InteractionCreate, user *discordgo.User) {
	data := i.ModalSubmitData()
	teamName, ok := customIDValue(data.CustomID, constant.NICKNAME_MODAL_ID)
	if !ok {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("guild_id", i.GuildID),
		attribute.String("member_id", user.ID),
		attribute.String("team", teamName),
	}
	controller.Runner.Run("interaction_modal", attrs, func(ctx context.Context, log *zap.Logger) error {
		err := deferReply(ctx, s, i)
		if err != nil {
			return err
		}

		nickname := modalValue(data, constant.NICKNAME_INPUT_ID)
		reply, err := controller.OnboardingUsecase.SubmitNickname(ctx, i.GuildID, user.ID, teamName, nickname)
		return controller.editDeferred(ctx, s, i, log, reply, err, teamName)
	})
}

// toReply turns a usecase error into what the user sees. Validation and guild resolution failures
// are shown as is; anything else gets the generic message. A nickname validation failure offers a
// button that reopens the modal.
func toReply(log *zap.Logger, reply model.Reply, err error, retryTeam string) (model.Reply, []discordgo.MessageComponent) {
	if err == nil {
		return reply, nil
	}

	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		if retryTeam != "" && validationErr.Param == "nickname" {
			return model.MessageReply(validationErr.Message), retryComponents(retryTeam)
		}
		return model.MessageReply(validationErr.Message), nil
	}

	if errors.Is(err, model.ErrGuildNotResolved) {
		return model.MessageReply(guildNotResolvedMessage), nil
	}

	log.Error("interaction failed", zap.Error(err))
	return model.MessageReply(constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE), nil
}

func (controller *OnboardingController) respond(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, log *zap.Logger, reply model.Reply, err error, retryTeam string) error {
	reply, components := toReply(log, reply, err, retryTeam)

	switch reply.Kind {
	case model.ReplyNone:
		return nil
	case model.ReplyNicknameModal:
		return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: NicknameModal(reply.TeamName, reply.DefaultNickname),
		}, discordgo.WithContext(ctx))
	default:
		return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content:    reply.Content,
				Components: components,
				Flags:      discordgo.MessageFlagsEphemeral,
			},
		}, discordgo.WithContext(ctx))
	}
}

// deferReply acknowledges the interaction so slow platform work does not hit the response deadline.
func deferReply(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
}

func (controller *OnboardingController) editDeferred(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, log *zap.Logger, reply model.Reply, err error, retryTeam string) error {
	reply, components := toReply(log, reply, err, retryTeam)
	if reply.Kind != model.ReplyMessage {
		return nil
	}

	edit := &discordgo.WebhookEdit{Content: &reply.Content}
	if components != nil {
		edit.Components = &components
	}
	_, err = s.InteractionResponseEdit(i.Interaction, edit, discordgo.WithContext(ctx))
	return err
}

func isSelf(s *discordgo.Session, userID string) bool {
	return s.State != nil && s.State.User != nil && s.State.User.ID == userID
}
