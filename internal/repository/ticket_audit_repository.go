package repository

import (
	"context"

	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// TicketAuditRepository keeps the history of support tickets. The tickets themselves live in the
// guild; this table only records what happened to them. A nil pool disables the audit.
type TicketAuditRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewTicketAuditRepository(zap *zap.Logger, db *pgxpool.Pool) *TicketAuditRepository {
	return &TicketAuditRepository{
		Log: zap,
		DB:  db,
	}
}

// Postgresql
func (repository *TicketAuditRepository) CreateTicketEvent(ctx context.Context, event model.TicketEvent) error {
	if repository.DB == nil {
		return nil
	}

	query := "INSERT INTO ticket_events (id, guild_id, member_id, channel_id, action, detail, create_datetime) VALUES ($1,$2,$3,$4,$5,$6,$7)"

	_, err := repository.DB.Exec(ctx, query, event.Id, event.GuildId, event.MemberId, event.ChannelId, string(event.Action), event.Detail, event.CreateDatetime)
	if err != nil {
		return err
	}

	return nil
}

func (repository *TicketAuditRepository) GetTicketEvents(ctx context.Context, guildId string, memberId string) ([]model.TicketEvent, error) {
	if repository.DB == nil {
		return nil, nil
	}

	query := "SELECT id, guild_id, member_id, channel_id, action, detail, create_datetime FROM ticket_events WHERE guild_id=$1 AND member_id=$2 ORDER BY create_datetime ASC"

	rows, err := repository.DB.Query(ctx, query, guildId, memberId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.TicketEvent
	for rows.Next() {
		var event model.TicketEvent
		var action string
		err = rows.Scan(&event.Id, &event.GuildId, &event.MemberId, &event.ChannelId, &action, &event.Detail, &event.CreateDatetime)
		if err != nil {
			return nil, err
		}
		event.Action = model.TicketAction(action)
		events = append(events, event)
	}

	return events, rows.Err()
}
