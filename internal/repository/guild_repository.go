package repository

import (
	"context"

	"github.com/ferdian3456/leaguebot/internal/model"
)

// GuildRepository is the outbound contract to the chat platform. Every piece of league state is
// read and written through it; nothing is cached between calls.
type GuildRepository interface {
	ListChannels(ctx context.Context, guildID string) ([]model.Channel, error)
	CreateChannel(ctx context.Context, guildID string, data model.ChannelCreate) (model.Channel, error)
	DeleteChannel(ctx context.Context, channelID string) error
	SetOverwrite(ctx context.Context, channelID string, overwrite model.Overwrite) error

	ListRoles(ctx context.Context, guildID string) ([]model.Role, error)
	CreateRole(ctx context.Context, guildID string, name string) (model.Role, error)
	AddMemberRole(ctx context.Context, guildID string, memberID string, roleID string) error
	RemoveMemberRole(ctx context.Context, guildID string, memberID string, roleID string) error

	GetMember(ctx context.Context, guildID string, memberID string) (model.Member, error)
	ListMembers(ctx context.Context, guildID string) ([]model.Member, error)
	SetNickname(ctx context.Context, guildID string, memberID string, nickname string) error
	MemberGuilds(ctx context.Context, userID string) ([]string, error)
	IsAdministrator(ctx context.Context, channelID string, userID string) (bool, error)

	SendMessage(ctx context.Context, channelID string, message model.OutgoingMessage) (string, error)
	SendDirectMessage(ctx context.Context, userID string, message model.OutgoingMessage) error
	AddReaction(ctx context.Context, channelID string, messageID string, emoji string) error
}
