package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ferdian3456/leaguebot/internal/constant"
	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/ferdian3456/leaguebot/internal/repository"
	"github.com/ferdian3456/leaguebot/internal/util"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	ticketGuardTTL      = 15 * time.Second
	ticketGuardAttempts = 5
	ticketGuardBackoff  = 200 * time.Millisecond
)

type TicketUsecase struct {
	GuildRepository       repository.GuildRepository
	TicketAuditRepository *repository.TicketAuditRepository
	EventGuardRepository  *repository.EventGuardRepository
	Log                   *zap.Logger
	Config                *koanf.Koanf
	group                 singleflight.Group
}

func NewTicketUsecase(guildRepository repository.GuildRepository, ticketAuditRepository *repository.TicketAuditRepository, eventGuardRepository *repository.EventGuardRepository, zap *zap.Logger, koanf *koanf.Koanf) *TicketUsecase {
	return &TicketUsecase{
		GuildRepository:       guildRepository,
		TicketAuditRepository: ticketAuditRepository,
		EventGuardRepository:  eventGuardRepository,
		Log:                   zap,
		Config:                koanf,
	}
}

func TicketChannelName(memberID string) string {
	return constant.TICKET_CHANNEL_PREFIX + memberID
}

// OpenOrAppend posts detail into the member's ticket channel, creating the channel first when the
// member has none. Concurrent callers for one member share a single find-or-create, and every
// caller's detail ends up in the channel.
func (usecase *TicketUsecase) OpenOrAppend(ctx context.Context, guildID string, member model.Member, detail string) (model.Ticket, error) {
	opened := false
	value, err, _ := usecase.group.Do(guildID+"/"+member.ID, func() (interface{}, error) {
		opened = true
		guardKey := fmt.Sprintf("ticket:%s:%s", guildID, member.ID)

		for attempt := 0; attempt < ticketGuardAttempts; attempt++ {
			acquired, err := usecase.EventGuardRepository.Acquire(ctx, guardKey, ticketGuardTTL)
			if err != nil {
				usecase.Log.Warn("ticket guard unavailable", zap.String("member_id", member.ID), zap.Error(err))
				break
			}
			if acquired {
				defer func() {
					if err := usecase.EventGuardRepository.Release(context.WithoutCancel(ctx), guardKey); err != nil {
						usecase.Log.Warn("failed to release ticket guard", zap.String("member_id", member.ID), zap.Error(err))
					}
				}()
				break
			}

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(ticketGuardBackoff):
			}
		}

		return usecase.findOrCreate(ctx, guildID, member, detail)
	})
	if err != nil {
		return model.Ticket{}, err
	}

	ticket := value.(model.Ticket)
	// the greeting of a channel this caller created already carries its detail
	if opened && ticket.Created {
		return ticket, nil
	}

	err = usecase.sendChunked(ctx, ticket.ChannelID, fmt.Sprintf("Another error occurred: %s", detail))
	if err != nil {
		return model.Ticket{}, err
	}

	usecase.audit(ctx, guildID, member.ID, ticket.ChannelID, model.TicketActionAppended, detail)
	return model.Ticket{ChannelID: ticket.ChannelID, MemberID: member.ID}, nil
}

// findOrCreate returns the member's ticket channel. A new channel is greeted with detail and
// reported with Created set.
func (usecase *TicketUsecase) findOrCreate(ctx context.Context, guildID string, member model.Member, detail string) (model.Ticket, error) {
	channels, err := usecase.GuildRepository.ListChannels(ctx, guildID)
	if err != nil {
		return model.Ticket{}, err
	}

	name := TicketChannelName(member.ID)
	if existing, ok := model.FindChannel(channels, model.ChannelKindText, name); ok {
		return model.Ticket{ChannelID: existing.ID, MemberID: member.ID}, nil
	}

	roles, err := usecase.GuildRepository.ListRoles(ctx, guildID)
	if err != nil {
		return model.Ticket{}, err
	}
	index := model.NewGuildRoles(guildID, roles)

	overwrites := []model.Overwrite{
		{TargetID: index.EveryoneID, TargetType: model.TargetRole, Deny: model.PermissionView},
		{TargetID: member.ID, TargetType: model.TargetMember, Allow: model.PermissionView | model.PermissionSend},
	}

	adminMention := ""
	if admin, ok := index.ByName(constant.ADMIN_ROLE); ok {
		overwrites = append(overwrites, model.Overwrite{TargetID: admin.ID, TargetType: model.TargetRole, Allow: model.PermissionView | model.PermissionSend})
		adminMention = fmt.Sprintf(" <@&%s>", admin.ID)
	}

	channel, err := usecase.GuildRepository.CreateChannel(ctx, guildID, model.ChannelCreate{
		Name:       name,
		Kind:       model.ChannelKindText,
		Topic:      fmt.Sprintf("Support ticket for %s", member.DisplayName()),
		Overwrites: overwrites,
	})
	if err != nil {
		return model.Ticket{}, err
	}

	greeting := fmt.Sprintf("Hello %s, a ticket has been created for your error:\n> %s\nAn admin will assist you here.%s", member.Mention(), detail, adminMention)
	err = usecase.sendChunked(ctx, channel.ID, greeting)
	if err != nil {
		return model.Ticket{}, err
	}

	usecase.Log.Info("opened ticket", zap.String("guild_id", guildID), zap.String("member_id", member.ID), zap.String("channel_id", channel.ID))
	usecase.audit(ctx, guildID, member.ID, channel.ID, model.TicketActionOpened, detail)
	usecase.notifyAdmins(member, detail)

	return model.Ticket{ChannelID: channel.ID, MemberID: member.ID, Created: true}, nil
}

func (usecase *TicketUsecase) Close(ctx context.Context, guildID string, memberID string) error {
	channels, err := usecase.GuildRepository.ListChannels(ctx, guildID)
	if err != nil {
		return err
	}

	channel, ok := model.FindChannel(channels, model.ChannelKindText, TicketChannelName(memberID))
	if !ok {
		return model.ErrTicketNotFound
	}

	err = usecase.GuildRepository.DeleteChannel(ctx, channel.ID)
	if errors.Is(err, model.ErrChannelNotFound) {
		return model.ErrTicketNotFound
	}
	if err != nil {
		return err
	}

	usecase.audit(ctx, guildID, memberID, channel.ID, model.TicketActionClosed, "")
	return nil
}

func (usecase *TicketUsecase) sendChunked(ctx context.Context, channelID string, content string) error {
	for _, chunk := range util.ChunkMessage(content, constant.MAX_MESSAGE_LENGTH) {
		_, err := usecase.GuildRepository.SendMessage(ctx, channelID, model.OutgoingMessage{Content: chunk})
		if err != nil {
			return err
		}
	}
	return nil
}

func (usecase *TicketUsecase) audit(ctx context.Context, guildID string, memberID string, channelID string, action model.TicketAction, detail string) {
	err := usecase.TicketAuditRepository.CreateTicketEvent(ctx, model.TicketEvent{
		Id:             uuid.New(),
		GuildId:        guildID,
		MemberId:       memberID,
		ChannelId:      channelID,
		Action:         action,
		Detail:         detail,
		CreateDatetime: time.Now().UTC(),
	})
	if err != nil {
		usecase.Log.Warn("failed to record ticket event", zap.String("member_id", memberID), zap.String("action", string(action)), zap.Error(err))
	}
}

// notifyAdmins e-mails the configured admin addresses about a new ticket without blocking the handler.
func (usecase *TicketUsecase) notifyAdmins(member model.Member, detail string) {
	if usecase.Config == nil {
		return
	}

	var receivers []string
	for _, address := range strings.Split(usecase.Config.String("ADMIN_EMAILS"), ",") {
		if address = strings.TrimSpace(address); address != "" {
			receivers = append(receivers, address)
		}
	}
	if len(receivers) == 0 {
		return
	}

	smtpHost := usecase.Config.String("SMTP_HOST")
	smtpPort := usecase.Config.Int("SMTP_PORT")
	senderName := usecase.Config.String("SENDER_NAME")
	senderEmail := usecase.Config.String("SENDER_EMAIL")
	senderPassword := usecase.Config.String("SENDER_PASSWORD")

	subject := fmt.Sprintf("Support ticket opened for %s", member.DisplayName())
	body := fmt.Sprintf("A support ticket was opened for %s (ID: %s).\n\nError:\n%s\n", member.DisplayName(), member.ID, detail)

	go func() {
		err := util.SendEmail(smtpHost, smtpPort, senderName, senderEmail, senderPassword, receivers, subject, body)
		if err != nil {
			usecase.Log.Warn("failed to e-mail admins about ticket", zap.String("member_id", member.ID), zap.Error(err))
		}
	}()
}

// GetTicketHistory returns the audit trail of a member's tickets, oldest first.
func (usecase *TicketUsecase) GetTicketHistory(ctx context.Context, guildId string, memberId string) ([]model.TicketEventResponse, error) {
	if !isSnowflake(guildId) {
		return nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid guild id",
			Param:   "guildId",
		}
	}
	if !isSnowflake(memberId) {
		return nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid member id",
			Param:   "memberId",
		}
	}

	events, err := usecase.TicketAuditRepository.GetTicketEvents(ctx, guildId, memberId)
	if err != nil {
		return nil, err
	}

	response := make([]model.TicketEventResponse, 0, len(events))
	for _, event := range events {
		response = append(response, model.TicketEventResponse{
			Id:             event.Id,
			ChannelId:      event.ChannelId,
			Action:         string(event.Action),
			Detail:         event.Detail,
			CreateDatetime: event.CreateDatetime,
		})
	}

	return response, nil
}

func isSnowflake(id string) bool {
	if id == "" || len(id) > 20 {
		return false
	}
	return strings.Trim(id, "0123456789") == ""
}
