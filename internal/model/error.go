package model

import "errors"

type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrGuildNotResolved = errors.New("could not find your server membership, please use this in the server")
	ErrRoleNotFound     = errors.New("role not found")
	ErrChannelNotFound  = errors.New("channel not found")
	ErrMemberNotFound   = errors.New("member not found")
	ErrTicketNotFound   = errors.New("no open ticket found")
	ErrEmptyCatalog     = errors.New("catalog has no teams")
)
