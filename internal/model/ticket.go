package model

import (
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	ChannelID string
	MemberID  string
	Created   bool
}

type TicketAction string

const (
	TicketActionOpened   TicketAction = "opened"
	TicketActionAppended TicketAction = "appended"
	TicketActionClosed   TicketAction = "closed"
)

type TicketEvent struct {
	Id             uuid.UUID
	GuildId        string
	MemberId       string
	ChannelId      string
	Action         TicketAction
	Detail         string
	CreateDatetime time.Time
}

type TicketEventResponse struct {
	Id             uuid.UUID `json:"id"`
	ChannelId      string    `json:"channelId"`
	Action         string    `json:"action"`
	Detail         string    `json:"detail"`
	CreateDatetime time.Time `json:"createDatetime"`
}
