// Package policy holds the pure permission rules of the league guild. Nothing here performs I/O.
package policy

import (
	"slices"
	"strings"

	"github.com/ferdian3456/leaguebot/internal/constant"
	"github.com/ferdian3456/leaguebot/internal/model"
)

type Class int

const (
	ClassUnmanaged Class = iota
	ClassReadOnly
	ClassMedia
	ClassAdmin
	ClassGeneral
	ClassStaffVoice
)

func (c Class) String() string {
	switch c {
	case ClassReadOnly:
		return "read_only"
	case ClassMedia:
		return "media"
	case ClassAdmin:
		return "admin"
	case ClassGeneral:
		return "general"
	case ClassStaffVoice:
		return "staff_voice"
	default:
		return "unmanaged"
	}
}

// Classify maps a channel onto the fixed naming contract. A name containing "admin" always wins.
func Classify(channel model.Channel) Class {
	switch channel.Kind {
	case model.ChannelKindVoice:
		if channel.Name == constant.STAFF_VOICE_CHANNEL {
			return ClassStaffVoice
		}
		return ClassUnmanaged
	case model.ChannelKindText:
	default:
		return ClassUnmanaged
	}

	if strings.Contains(channel.Name, constant.ADMIN_CHANNEL_MARKER) {
		return ClassAdmin
	}
	if strings.HasPrefix(channel.Name, constant.TICKET_CHANNEL_PREFIX) {
		return ClassUnmanaged
	}
	if slices.Contains(constant.READ_ONLY_CHANNELS, channel.Name) {
		return ClassReadOnly
	}
	if slices.Contains(constant.MEDIA_CHANNELS, channel.Name) {
		return ClassMedia
	}

	return ClassGeneral
}
