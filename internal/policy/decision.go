package policy

import (
	"github.com/ferdian3456/leaguebot/internal/constant"
	"github.com/ferdian3456/leaguebot/internal/model"
)

var (
	viewOnly    = access{allow: model.PermissionView, deny: model.PermissionSend}
	viewWrite   = access{allow: model.PermissionView | model.PermissionSend}
	hidden      = access{deny: model.PermissionView}
	voiceHidden = access{deny: model.PermissionView | model.PermissionConnect}
	viewConnect = access{allow: model.PermissionView | model.PermissionConnect}
)

type access struct {
	allow model.Permission
	deny  model.Permission
}

func (a access) overwrite(targetType model.TargetType, targetID string) model.Overwrite {
	return model.Overwrite{
		TargetID:   targetID,
		TargetType: targetType,
		Allow:      a.allow,
		Deny:       a.deny,
	}
}

func baseAccess(stage model.Stage, class Class, name string) access {
	switch class {
	case ClassReadOnly:
		// team selection unlocks with the rules reaction
		if name == constant.TEAM_SELECTION_CHANNEL && stage == model.StageJoined {
			return hidden
		}
		return viewOnly
	case ClassStaffVoice:
		return voiceHidden
	case ClassMedia:
		if stage == model.StageNicknameSet {
			return viewOnly
		}
		return hidden
	case ClassGeneral:
		if stage == model.StageNicknameSet {
			return viewWrite
		}
		return hidden
	default:
		return hidden
	}
}

// MemberDecision computes the per-member overwrite for a channel. The second result is false for
// unmanaged channels, which the access controller never touches.
func MemberDecision(memberID string, state model.MemberState, channel model.Channel) (model.Overwrite, bool) {
	class := Classify(channel)
	if class == ClassUnmanaged {
		return model.Overwrite{}, false
	}

	result := baseAccess(state.Stage, class, channel.Name)

	if state.IsMedia && class == ClassMedia {
		result = viewWrite
	}

	if state.IsAdmin {
		switch class {
		case ClassReadOnly:
			result = viewOnly
		case ClassMedia, ClassAdmin, ClassGeneral:
			result = viewWrite
		case ClassStaffVoice:
			result = viewConnect
		}
	}

	return result.overwrite(model.TargetMember, memberID), true
}

// RoleBaseline is the role-level overwrite setup_permissions applies for a structural role.
// roleName is one of the structural role names, or "" for @everyone.
func RoleBaseline(class Class, roleName string, roleID string) (model.Overwrite, bool) {
	var result access

	switch class {
	case ClassReadOnly:
		result = viewOnly
		if roleName == adminRole {
			result = viewWrite
		}
	case ClassMedia:
		result = hidden
		if roleName == adminRole || roleName == mediaRole {
			result = viewWrite
		}
	case ClassAdmin:
		result = hidden
		if roleName == adminRole {
			result = viewWrite
		}
	case ClassGeneral:
		switch roleName {
		case adminRole:
			result = viewWrite
		case mediaRole:
			return model.Overwrite{}, false
		default:
			result = hidden
		}
	case ClassStaffVoice:
		switch roleName {
		case adminRole:
			result = viewConnect
		case everyoneRole:
			result = voiceHidden
		default:
			return model.Overwrite{}, false
		}
	default:
		return model.Overwrite{}, false
	}

	return result.overwrite(model.TargetRole, roleID), true
}
