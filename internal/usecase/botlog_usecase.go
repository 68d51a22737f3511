package usecase

import (
	"context"

	"github.com/ferdian3456/leaguebot/internal/constant"
	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/ferdian3456/leaguebot/internal/repository"
	"github.com/ferdian3456/leaguebot/internal/util"
	"go.uber.org/zap"
)

// BotLogUsecase mirrors bot activity into #bot-logs. A missing channel silently drops the entry.
type BotLogUsecase struct {
	GuildRepository repository.GuildRepository
	Log             *zap.Logger
}

func NewBotLogUsecase(guildRepository repository.GuildRepository, zap *zap.Logger) *BotLogUsecase {
	return &BotLogUsecase{
		GuildRepository: guildRepository,
		Log:             zap,
	}
}

func (usecase *BotLogUsecase) Send(ctx context.Context, guildID string, message string) {
	usecase.Log.Info("bot log", zap.String("guild_id", guildID), zap.String("message", message))

	channels, err := usecase.GuildRepository.ListChannels(ctx, guildID)
	if err != nil {
		usecase.Log.Warn("failed to resolve bot-logs channel", zap.String("guild_id", guildID), zap.Error(err))
		return
	}

	channel, ok := model.FindChannel(channels, model.ChannelKindText, constant.BOT_LOGS_CHANNEL)
	if !ok {
		return
	}

	for _, chunk := range util.ChunkMessage(message, constant.MAX_MESSAGE_LENGTH) {
		_, err = usecase.GuildRepository.SendMessage(ctx, channel.ID, model.OutgoingMessage{Content: chunk})
		if err != nil {
			usecase.Log.Warn("failed to write bot log", zap.String("guild_id", guildID), zap.Error(err))
			return
		}
	}
}

// SendList writes prefix + items in as many messages as the length limit requires.
func (usecase *BotLogUsecase) SendList(ctx context.Context, guildID string, prefix string, items []string) {
	for _, message := range util.ChunkList(prefix, items, constant.MAX_MESSAGE_LENGTH) {
		usecase.Send(ctx, guildID, message)
	}
}
