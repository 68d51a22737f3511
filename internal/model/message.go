package model

import "context"

type SelectOption struct {
	Label       string
	Value       string
	Description string
}

type SelectMenu struct {
	CustomID    string
	Placeholder string
	Options     []SelectOption
}

type Button struct {
	CustomID string
	Label    string
}

// OutgoingMessage is a channel or direct message with at most one interactive control.
type OutgoingMessage struct {
	Content string
	Select  *SelectMenu
	Button  *Button
}

type ReplyKind int

const (
	ReplyMessage ReplyKind = iota
	ReplyNicknameModal
	ReplyNone
)

// Reply is what an interaction handler answers with. Messages are always ephemeral.
type Reply struct {
	Kind            ReplyKind
	Content         string
	TeamName        string
	DefaultNickname string

	// FollowUp, when set, runs once the response has been sent.
	FollowUp func(ctx context.Context)
}

func MessageReply(content string) Reply {
	return Reply{Kind: ReplyMessage, Content: content}
}
