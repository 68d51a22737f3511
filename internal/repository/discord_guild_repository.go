package repository

import (
	"context"
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/ferdian3456/leaguebot/internal/model"
	"go.uber.org/zap"
)

const membersPageSize = 1000

type DiscordGuildRepository struct {
	Log     *zap.Logger
	Session *discordgo.Session
}

func NewDiscordGuildRepository(zap *zap.Logger, session *discordgo.Session) *DiscordGuildRepository {
	return &DiscordGuildRepository{
		Log:     zap,
		Session: session,
	}
}

func (repository *DiscordGuildRepository) ListChannels(ctx context.Context, guildID string) ([]model.Channel, error) {
	channels, err := repository.Session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	result := make([]model.Channel, 0, len(channels))
	for _, channel := range channels {
		result = append(result, toChannel(channel))
	}

	return result, nil
}

func (repository *DiscordGuildRepository) CreateChannel(ctx context.Context, guildID string, data model.ChannelCreate) (model.Channel, error) {
	overwrites := make([]*discordgo.PermissionOverwrite, 0, len(data.Overwrites))
	for _, overwrite := range data.Overwrites {
		overwrites = append(overwrites, toDiscordOverwrite(overwrite))
	}

	channel, err := repository.Session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 data.Name,
		Type:                 toDiscordChannelType(data.Kind),
		Topic:                data.Topic,
		PermissionOverwrites: overwrites,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return model.Channel{}, err
	}

	return toChannel(channel), nil
}

func (repository *DiscordGuildRepository) DeleteChannel(ctx context.Context, channelID string) error {
	_, err := repository.Session.ChannelDelete(channelID, discordgo.WithContext(ctx))
	if isNotFound(err) {
		return model.ErrChannelNotFound
	}
	return err
}

func (repository *DiscordGuildRepository) SetOverwrite(ctx context.Context, channelID string, overwrite model.Overwrite) error {
	return repository.Session.ChannelPermissionSet(
		channelID,
		overwrite.TargetID,
		toDiscordTargetType(overwrite.TargetType),
		toDiscordPermissions(overwrite.Allow),
		toDiscordPermissions(overwrite.Deny),
		discordgo.WithContext(ctx),
	)
}

func (repository *DiscordGuildRepository) ListRoles(ctx context.Context, guildID string) ([]model.Role, error) {
	roles, err := repository.Session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	result := make([]model.Role, 0, len(roles))
	for _, role := range roles {
		result = append(result, model.Role{ID: role.ID, Name: role.Name})
	}

	return result, nil
}

func (repository *DiscordGuildRepository) CreateRole(ctx context.Context, guildID string, name string) (model.Role, error) {
	role, err := repository.Session.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: name}, discordgo.WithContext(ctx))
	if err != nil {
		return model.Role{}, err
	}

	return model.Role{ID: role.ID, Name: role.Name}, nil
}

func (repository *DiscordGuildRepository) AddMemberRole(ctx context.Context, guildID string, memberID string, roleID string) error {
	return repository.Session.GuildMemberRoleAdd(guildID, memberID, roleID, discordgo.WithContext(ctx))
}

func (repository *DiscordGuildRepository) RemoveMemberRole(ctx context.Context, guildID string, memberID string, roleID string) error {
	return repository.Session.GuildMemberRoleRemove(guildID, memberID, roleID, discordgo.WithContext(ctx))
}

func (repository *DiscordGuildRepository) GetMember(ctx context.Context, guildID string, memberID string) (model.Member, error) {
	member, err := repository.Session.GuildMember(guildID, memberID, discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return model.Member{}, model.ErrMemberNotFound
		}
		return model.Member{}, err
	}

	return toMember(member), nil
}

func (repository *DiscordGuildRepository) ListMembers(ctx context.Context, guildID string) ([]model.Member, error) {
	var result []model.Member
	after := ""

	for {
		members, err := repository.Session.GuildMembers(guildID, after, membersPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}

		for _, member := range members {
			result = append(result, toMember(member))
		}

		if len(members) < membersPageSize {
			return result, nil
		}
		after = members[len(members)-1].User.ID
	}
}

func (repository *DiscordGuildRepository) SetNickname(ctx context.Context, guildID string, memberID string, nickname string) error {
	return repository.Session.GuildMemberNickname(guildID, memberID, nickname, discordgo.WithContext(ctx))
}

// MemberGuilds returns the guilds shared by the bot and the user, using the gateway state as the
// list of candidate guilds.
func (repository *DiscordGuildRepository) MemberGuilds(ctx context.Context, userID string) ([]string, error) {
	repository.Session.State.RLock()
	candidates := make([]string, 0, len(repository.Session.State.Guilds))
	for _, guild := range repository.Session.State.Guilds {
		candidates = append(candidates, guild.ID)
	}
	repository.Session.State.RUnlock()

	var shared []string
	for _, guildID := range candidates {
		if _, err := repository.Session.State.Member(guildID, userID); err == nil {
			shared = append(shared, guildID)
			continue
		}

		_, err := repository.Session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
		if err == nil {
			shared = append(shared, guildID)
			continue
		}
		if !isNotFound(err) {
			return nil, err
		}
	}

	return shared, nil
}

func (repository *DiscordGuildRepository) IsAdministrator(ctx context.Context, channelID string, userID string) (bool, error) {
	permissions, err := repository.Session.UserChannelPermissions(userID, channelID, discordgo.WithContext(ctx))
	if err != nil {
		return false, err
	}

	return permissions&discordgo.PermissionAdministrator != 0, nil
}

func (repository *DiscordGuildRepository) SendMessage(ctx context.Context, channelID string, message model.OutgoingMessage) (string, error) {
	sent, err := repository.Session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    message.Content,
		Components: toComponents(message),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}

	return sent.ID, nil
}

func (repository *DiscordGuildRepository) SendDirectMessage(ctx context.Context, userID string, message model.OutgoingMessage) error {
	channel, err := repository.Session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}

	_, err = repository.SendMessage(ctx, channel.ID, message)
	return err
}

func (repository *DiscordGuildRepository) AddReaction(ctx context.Context, channelID string, messageID string, emoji string) error {
	return repository.Session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx))
}

func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}
