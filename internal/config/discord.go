package config

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const intents = discordgo.IntentGuilds |
	discordgo.IntentGuildMembers |
	discordgo.IntentGuildMessages |
	discordgo.IntentGuildMessageReactions |
	discordgo.IntentDirectMessages |
	discordgo.IntentMessageContent

func NewDiscordSession(config *koanf.Koanf, log *zap.Logger) *discordgo.Session {
	token := config.String("DISCORD_TOKEN")
	if token == "" {
		log.Fatal("DISCORD_TOKEN is required")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatal("failed to create discord session", zap.Error(err))
	}

	session.Identify.Intents = intents
	session.StateEnabled = true

	discordLog := log.Named("discordgo")
	discordgo.Logger = func(msgL, caller int, format string, a ...interface{}) {
		message := fmt.Sprintf(format, a...)
		switch msgL {
		case discordgo.LogError:
			discordLog.Error(message)
		case discordgo.LogWarning:
			discordLog.Warn(message)
		case discordgo.LogInformational:
			discordLog.Info(message)
		default:
			discordLog.Debug(message)
		}
	}

	return session
}
