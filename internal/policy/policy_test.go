package policy

import (
	"testing"

	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(name string) model.Channel {
	return model.Channel{ID: name, Name: name, Kind: model.ChannelKindText}
}

func voice(name string) model.Channel {
	return model.Channel{ID: name, Name: name, Kind: model.ChannelKindVoice}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		channel model.Channel
		want    Class
	}{
		{text("welcome"), ClassReadOnly},
		{text("rules"), ClassReadOnly},
		{text("bot-logs"), ClassReadOnly},
		{text("team-selection"), ClassReadOnly},
		{text("trophy-room"), ClassMedia},
		{text("247sports-recruits-crystal-ball"), ClassMedia},
		{text("pre-season-all-americans"), ClassMedia},
		{text("admin-chat"), ClassAdmin},
		{text("league-admin-votes"), ClassAdmin},
		{text("general"), ClassGeneral},
		{text("ticket-123"), ClassUnmanaged},
		{text("ticket-admin"), ClassAdmin},
		{voice("staff only VC"), ClassStaffVoice},
		{voice("General"), ClassUnmanaged},
		{voice("admin lounge"), ClassUnmanaged},
		{model.Channel{Name: "Text Channels", Kind: model.ChannelKindOther}, ClassUnmanaged},
	}

	for _, tt := range tests {
		t.Run(tt.channel.Name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.channel))
		})
	}
}

func TestMemberDecisionTable(t *testing.T) {
	channels := map[string]model.Channel{
		"read-only":      text("rules"),
		"team-selection": text("team-selection"),
		"media":          text("trophy-room"),
		"admin":          text("admin-chat"),
		"other":          text("general"),
		"staff-voice":    voice("staff only VC"),
	}

	viewOnly := [2]model.Permission{model.PermissionView, model.PermissionSend}
	viewWrite := [2]model.Permission{model.PermissionView | model.PermissionSend, 0}
	hiddenText := [2]model.Permission{0, model.PermissionView}
	hiddenVoice := [2]model.Permission{0, model.PermissionView | model.PermissionConnect}
	viewConnect := [2]model.Permission{model.PermissionView | model.PermissionConnect, 0}

	tests := []struct {
		name  string
		state model.MemberState
		want  map[string][2]model.Permission
	}{
		{
			name:  "joined",
			state: model.MemberState{Stage: model.StageJoined},
			want: map[string][2]model.Permission{
				"read-only": viewOnly, "team-selection": hiddenText, "media": hiddenText, "admin": hiddenText, "other": hiddenText, "staff-voice": hiddenVoice,
			},
		},
		{
			name:  "rules accepted",
			state: model.MemberState{Stage: model.StageRulesAccepted},
			want: map[string][2]model.Permission{
				"read-only": viewOnly, "team-selection": viewOnly, "media": hiddenText, "admin": hiddenText, "other": hiddenText, "staff-voice": hiddenVoice,
			},
		},
		{
			name:  "team selected",
			state: model.MemberState{Stage: model.StageTeamSelected, TeamName: "Ohio State Buckeyes"},
			want: map[string][2]model.Permission{
				"read-only": viewOnly, "team-selection": viewOnly, "media": hiddenText, "admin": hiddenText, "other": hiddenText, "staff-voice": hiddenVoice,
			},
		},
		{
			name:  "nickname set",
			state: model.MemberState{Stage: model.StageNicknameSet, TeamName: "Ohio State Buckeyes"},
			want: map[string][2]model.Permission{
				"read-only": viewOnly, "team-selection": viewOnly, "media": viewOnly, "admin": hiddenText, "other": viewWrite, "staff-voice": hiddenVoice,
			},
		},
		{
			name:  "admin before onboarding",
			state: model.MemberState{Stage: model.StageJoined, IsAdmin: true},
			want: map[string][2]model.Permission{
				"read-only": viewOnly, "team-selection": viewOnly, "media": viewWrite, "admin": viewWrite, "other": viewWrite, "staff-voice": viewConnect,
			},
		},
		{
			name:  "media team member",
			state: model.MemberState{Stage: model.StageNicknameSet, IsMedia: true},
			want: map[string][2]model.Permission{
				"read-only": viewOnly, "team-selection": viewOnly, "media": viewWrite, "admin": hiddenText, "other": viewWrite, "staff-voice": hiddenVoice,
			},
		},
		{
			name:  "media role without nickname",
			state: model.MemberState{Stage: model.StageRulesAccepted, IsMedia: true},
			want: map[string][2]model.Permission{
				"read-only": viewOnly, "team-selection": viewOnly, "media": viewWrite, "admin": hiddenText, "other": hiddenText, "staff-voice": hiddenVoice,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for class, channel := range channels {
				overwrite, ok := MemberDecision("42", tt.state, channel)
				require.True(t, ok, "%s should be managed", class)
				assert.Equal(t, model.TargetMember, overwrite.TargetType)
				assert.Equal(t, "42", overwrite.TargetID)
				assert.Equal(t, tt.want[class], [2]model.Permission{overwrite.Allow, overwrite.Deny}, "channel class %s", class)
			}
		})
	}
}

func TestMemberDecisionIsPure(t *testing.T) {
	states := []model.MemberState{
		{Stage: model.StageJoined},
		{Stage: model.StageNicknameSet, IsAdmin: true, IsMedia: true},
	}
	channels := []model.Channel{text("rules"), text("general"), text("ticket-1"), voice("staff only VC")}

	for _, state := range states {
		for _, channel := range channels {
			first, firstOK := MemberDecision("42", state, channel)
			second, secondOK := MemberDecision("42", state, channel)
			assert.Equal(t, first, second)
			assert.Equal(t, firstOK, secondOK)
		}
	}

	_, ok := MemberDecision("42", model.MemberState{Stage: model.StageNicknameSet, IsAdmin: true}, text("ticket-42"))
	assert.False(t, ok, "ticket channels are never touched by the sweep")
}

func TestRoleBaseline(t *testing.T) {
	tests := []struct {
		name    string
		class   Class
		role    string
		managed bool
		allow   model.Permission
		deny    model.Permission
	}{
		{"everyone read-only", ClassReadOnly, everyoneRole, true, model.PermissionView, model.PermissionSend},
		{"admin read-only", ClassReadOnly, adminRole, true, model.PermissionView | model.PermissionSend, 0},
		{"league media", ClassMedia, leagueRole, true, 0, model.PermissionView},
		{"media media", ClassMedia, mediaRole, true, model.PermissionView | model.PermissionSend, 0},
		{"media admin channel", ClassAdmin, mediaRole, true, 0, model.PermissionView},
		{"admin general", ClassGeneral, adminRole, true, model.PermissionView | model.PermissionSend, 0},
		{"everyone general", ClassGeneral, everyoneRole, true, 0, model.PermissionView},
		{"media general", ClassGeneral, mediaRole, false, 0, 0},
		{"everyone staff voice", ClassStaffVoice, everyoneRole, true, 0, model.PermissionView | model.PermissionConnect},
		{"admin staff voice", ClassStaffVoice, adminRole, true, model.PermissionView | model.PermissionConnect, 0},
		{"league staff voice", ClassStaffVoice, leagueRole, false, 0, 0},
		{"unmanaged", ClassUnmanaged, adminRole, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overwrite, ok := RoleBaseline(tt.class, tt.role, "role-id")
			require.Equal(t, tt.managed, ok)
			if !ok {
				return
			}
			assert.Equal(t, model.TargetRole, overwrite.TargetType)
			assert.Equal(t, "role-id", overwrite.TargetID)
			assert.Equal(t, tt.allow, overwrite.Allow)
			assert.Equal(t, tt.deny, overwrite.Deny)
		})
	}
}

func TestDeriveState(t *testing.T) {
	catalog := model.NewCatalog([]model.Conference{
		{Name: "Big Ten", Teams: []model.Team{{Name: "Ohio State Buckeyes"}}},
	})
	roles := model.NewGuildRoles("1", []model.Role{
		{ID: "10", Name: "League Member"},
		{ID: "11", Name: "Admin"},
		{ID: "12", Name: "Media Team"},
		{ID: "20", Name: "Ohio State Buckeyes"},
		{ID: "30", Name: "Moderators"},
	})

	tests := []struct {
		name   string
		member model.Member
		want   model.MemberState
	}{
		{"no roles", model.Member{}, model.MemberState{Stage: model.StageJoined}},
		{"team role without league role", model.Member{RoleIDs: []string{"20"}, Nickname: "Go Buckeyes"},
			model.MemberState{Stage: model.StageJoined, TeamName: "Ohio State Buckeyes"}},
		{"league member", model.Member{RoleIDs: []string{"10", "30"}}, model.MemberState{Stage: model.StageRulesAccepted}},
		{"team without nickname", model.Member{RoleIDs: []string{"10", "20"}},
			model.MemberState{Stage: model.StageTeamSelected, TeamName: "Ohio State Buckeyes"}},
		{"nickname not matching team", model.Member{RoleIDs: []string{"10", "20"}, Nickname: "Go Bucks"},
			model.MemberState{Stage: model.StageTeamSelected, TeamName: "Ohio State Buckeyes"}},
		{"onboarded admin and media", model.Member{RoleIDs: []string{"10", "20", "11", "12"}, Nickname: "Go Buckeyes!"},
			model.MemberState{Stage: model.StageNicknameSet, TeamName: "Ohio State Buckeyes", IsAdmin: true, IsMedia: true}},
		{"unknown role ids are ignored", model.Member{RoleIDs: []string{"999"}}, model.MemberState{Stage: model.StageJoined}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveState(tt.member, roles, catalog))
		})
	}

	held := HeldTeamRoles(model.Member{RoleIDs: []string{"10", "20", "11"}}, roles, catalog)
	assert.Equal(t, []model.Role{{ID: "20", Name: "Ohio State Buckeyes"}}, held)
}
