package repository

import (
	"github.com/bwmarrin/discordgo"
	"github.com/ferdian3456/leaguebot/internal/model"
)

var permissionBits = []struct {
	model   model.Permission
	discord int64
}{
	{model.PermissionView, discordgo.PermissionViewChannel},
	{model.PermissionSend, discordgo.PermissionSendMessages},
	{model.PermissionConnect, discordgo.PermissionVoiceConnect},
}

func toDiscordPermissions(permission model.Permission) int64 {
	var result int64
	for _, bit := range permissionBits {
		if permission&bit.model != 0 {
			result |= bit.discord
		}
	}
	return result
}

// fromDiscordPermissions keeps only the bits the league policy manages.
func fromDiscordPermissions(permissions int64) model.Permission {
	var result model.Permission
	for _, bit := range permissionBits {
		if permissions&bit.discord != 0 {
			result |= bit.model
		}
	}
	return result
}

func toDiscordTargetType(targetType model.TargetType) discordgo.PermissionOverwriteType {
	if targetType == model.TargetMember {
		return discordgo.PermissionOverwriteTypeMember
	}
	return discordgo.PermissionOverwriteTypeRole
}

func toDiscordOverwrite(overwrite model.Overwrite) *discordgo.PermissionOverwrite {
	return &discordgo.PermissionOverwrite{
		ID:    overwrite.TargetID,
		Type:  toDiscordTargetType(overwrite.TargetType),
		Allow: toDiscordPermissions(overwrite.Allow),
		Deny:  toDiscordPermissions(overwrite.Deny),
	}
}

func toDiscordChannelType(kind model.ChannelKind) discordgo.ChannelType {
	if kind == model.ChannelKindVoice {
		return discordgo.ChannelTypeGuildVoice
	}
	return discordgo.ChannelTypeGuildText
}

func toChannel(channel *discordgo.Channel) model.Channel {
	result := model.Channel{
		ID:    channel.ID,
		Name:  channel.Name,
		Topic: channel.Topic,
	}

	switch channel.Type {
	case discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews:
		result.Kind = model.ChannelKindText
	case discordgo.ChannelTypeGuildVoice:
		result.Kind = model.ChannelKindVoice
	default:
		result.Kind = model.ChannelKindOther
	}

	for _, overwrite := range channel.PermissionOverwrites {
		targetType := model.TargetRole
		if overwrite.Type == discordgo.PermissionOverwriteTypeMember {
			targetType = model.TargetMember
		}

		result.Overwrites = append(result.Overwrites, model.Overwrite{
			TargetID:   overwrite.ID,
			TargetType: targetType,
			Allow:      fromDiscordPermissions(overwrite.Allow),
			Deny:       fromDiscordPermissions(overwrite.Deny),
		})
	}

	return result
}

func toMember(member *discordgo.Member) model.Member {
	result := model.Member{
		Nickname: member.Nick,
		RoleIDs:  member.Roles,
	}
	if member.User != nil {
		result.ID = member.User.ID
		result.Username = member.User.Username
	}
	return result
}

func toComponents(message model.OutgoingMessage) []discordgo.MessageComponent {
	switch {
	case message.Select != nil:
		minValues := 1
		options := make([]discordgo.SelectMenuOption, 0, len(message.Select.Options))
		for _, option := range message.Select.Options {
			options = append(options, discordgo.SelectMenuOption{
				Label:       option.Label,
				Value:       option.Value,
				Description: option.Description,
			})
		}

		return []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.SelectMenu{
						MenuType:    discordgo.StringSelectMenu,
						CustomID:    message.Select.CustomID,
						Placeholder: message.Select.Placeholder,
						MinValues:   &minValues,
						MaxValues:   1,
						Options:     options,
					},
				},
			},
		}
	case message.Button != nil:
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    message.Button.Label,
						Style:    discordgo.PrimaryButton,
						CustomID: message.Button.CustomID,
					},
				},
			},
		}
	default:
		return nil
	}
}
