package model

import "fmt"

type Member struct {
	ID       string
	Username string
	Nickname string
	RoleIDs  []string
}

func (m Member) Mention() string {
	return fmt.Sprintf("<@%s>", m.ID)
}

func (m Member) DisplayName() string {
	if m.Nickname != "" {
		return m.Nickname
	}
	return m.Username
}

func (m Member) HasRole(roleID string) bool {
	for _, id := range m.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

type Stage int

const (
	StageJoined Stage = iota
	StageRulesAccepted
	StageTeamSelected
	StageNicknameSet
)

func (s Stage) String() string {
	switch s {
	case StageJoined:
		return "joined"
	case StageRulesAccepted:
		return "rules_accepted"
	case StageTeamSelected:
		return "team_selected"
	case StageNicknameSet:
		return "nickname_set"
	default:
		return "unknown"
	}
}

// MemberState is everything the permission policy needs about a member, derived fresh per event.
type MemberState struct {
	Stage    Stage
	IsAdmin  bool
	IsMedia  bool
	TeamName string
}
