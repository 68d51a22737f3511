package policy

import (
	"github.com/ferdian3456/leaguebot/internal/constant"
	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/ferdian3456/leaguebot/internal/util"
)

const (
	everyoneRole = ""
	leagueRole   = constant.LEAGUE_MEMBER_ROLE
	adminRole    = constant.ADMIN_ROLE
	mediaRole    = constant.MEDIA_ROLE
)

// DeriveState rebuilds the onboarding stage from the roles and nickname the member holds right now.
func DeriveState(member model.Member, roles model.GuildRoles, catalog *model.Catalog) model.MemberState {
	state := model.MemberState{Stage: model.StageJoined}
	isLeague := false

	for _, roleID := range member.RoleIDs {
		role, ok := roles.ByID(roleID)
		if !ok {
			continue
		}

		switch {
		case role.Name == leagueRole:
			isLeague = true
		case role.Name == adminRole:
			state.IsAdmin = true
		case role.Name == mediaRole:
			state.IsMedia = true
		case state.TeamName == "" && catalog.HasTeam(role.Name):
			state.TeamName = role.Name
		}
	}

	switch {
	case !isLeague:
		state.Stage = model.StageJoined
	case state.TeamName == "":
		state.Stage = model.StageRulesAccepted
	case member.Nickname == "" || !util.SharesWord(member.Nickname, state.TeamName):
		state.Stage = model.StageTeamSelected
	default:
		state.Stage = model.StageNicknameSet
	}

	return state
}

// HeldTeamRoles lists the catalog team roles the member currently holds.
func HeldTeamRoles(member model.Member, roles model.GuildRoles, catalog *model.Catalog) []model.Role {
	var held []model.Role
	for _, roleID := range member.RoleIDs {
		role, ok := roles.ByID(roleID)
		if ok && catalog.HasTeam(role.Name) {
			held = append(held, role)
		}
	}
	return held
}
