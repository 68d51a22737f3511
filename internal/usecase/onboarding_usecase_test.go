package usecase

import (
	"testing"

	"github.com/ferdian3456/leaguebot/internal/constant"
	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidation(t *testing.T, err error, code string, param string) *model.ValidationError {
	t.Helper()

	var validationErr *model.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, code, validationErr.Code)
	assert.Equal(t, param, validationErr.Param)
	return validationErr
}

func TestOnboardingFlow(t *testing.T) {
	t.Log("=== Testing join, rules, team and nickname end to end ===")

	f := newFixture(t, testCatalog())
	f.guild.AddMember(model.Member{ID: "42", Username: "louis"})
	viewWrite := model.PermissionView | model.PermissionSend

	t.Log("=== Join ===")
	err := f.onboarding.MemberJoined(f.ctx, testGuildID, "42")
	require.NoError(t, err)
	assert.Equal(t, model.PermissionView, f.memberOverwrite(t, "general", "42").Deny, "new member cannot see general")
	assert.Equal(t, model.PermissionView, f.memberOverwrite(t, constant.TEAM_SELECTION_CHANNEL, "42").Deny, "team selection waits for the rules")
	assert.Equal(t, model.PermissionView, f.memberOverwrite(t, constant.RULES_CHANNEL, "42").Allow)
	assert.True(t, f.botLogged("<@42> joined the server. Welcome message sent."))

	t.Log("=== Accept rules ===")
	err = f.onboarding.AcceptRules(f.ctx, testGuildID, f.rulesChannelID, "42", constant.RULES_EMOJI)
	require.NoError(t, err)
	assert.True(t, f.member(t, "42").HasRole(f.leagueRoleID))
	assert.Len(t, f.guild.Direct["42"], 2, "one prompt per conference")
	assert.Equal(t, "Choose your Big Ten conference team:", f.guild.Direct["42"][0].Content)
	assert.True(t, f.botLogged("has accepted the rules"))
	assert.Equal(t, model.PermissionView, f.memberOverwrite(t, "general", "42").Deny, "no team yet")
	assert.Equal(t, model.PermissionView, f.memberOverwrite(t, constant.TEAM_SELECTION_CHANNEL, "42").Allow, "rules unlock team selection")

	t.Log("=== Select team from DM ===")
	reply, err := f.onboarding.SelectTeam(f.ctx, "", "42", "Ohio State Buckeyes")
	require.NoError(t, err)
	assert.Equal(t, model.ReplyNicknameModal, reply.Kind)
	assert.Equal(t, "Ohio State Buckeyes", reply.TeamName)
	assert.Equal(t, "louis | Ohio State Buckeyes", reply.DefaultNickname)
	assert.True(t, f.member(t, "42").HasRole(f.roleID(t, "Ohio State Buckeyes")))
	require.NotNil(t, reply.FollowUp)
	reply.FollowUp(f.ctx)
	assert.True(t, f.botLogged("<@42> selected team Ohio State Buckeyes."))

	t.Log("=== Submit nickname ===")
	reply, err = f.onboarding.SubmitNickname(f.ctx, "", "42", "Ohio State Buckeyes", "  Go Buckeyes!  ")
	require.NoError(t, err)
	assert.Equal(t, model.ReplyMessage, reply.Kind)
	assert.Equal(t, "Your nickname has been set to: Go Buckeyes!. You now have access to all league channels!", reply.Content)
	assert.Equal(t, "Go Buckeyes!", f.member(t, "42").Nickname)

	assert.Equal(t, viewWrite, f.memberOverwrite(t, "general", "42").Allow)
	assert.Equal(t, model.PermissionView, f.memberOverwrite(t, "trophy-room", "42").Allow)
	assert.Equal(t, model.PermissionSend, f.memberOverwrite(t, "trophy-room", "42").Deny)
	assert.Equal(t, model.PermissionView, f.memberOverwrite(t, "admin-chat", "42").Deny)
	assert.True(t, f.botLogged("nickname set to: Go Buckeyes!"))
}

func TestAcceptRulesIgnored(t *testing.T) {
	f := newFixture(t, testCatalog())
	f.guild.AddMember(model.Member{ID: "42", Username: "louis"})

	err := f.onboarding.AcceptRules(f.ctx, testGuildID, f.rulesChannelID, "42", "👍")
	require.NoError(t, err)
	err = f.onboarding.AcceptRules(f.ctx, testGuildID, f.generalChannelID, "42", constant.RULES_EMOJI)
	require.NoError(t, err)

	assert.False(t, f.member(t, "42").HasRole(f.leagueRoleID), "only the rules emoji in #rules counts")
	assert.Empty(t, f.guild.Direct["42"])
}

func TestAcceptRulesWithoutLeagueRole(t *testing.T) {
	f := newBareFixture(t, testCatalog())
	f.guild.AddMember(model.Member{ID: "42", Username: "louis"})

	err := f.onboarding.AcceptRules(f.ctx, testGuildID, f.rulesChannelID, "42", constant.RULES_EMOJI)
	require.NoError(t, err)
	assert.True(t, f.botLogged("League Member role does not exist. Run !setup_basic_roles first."))
	assert.Empty(t, f.guild.Direct["42"])
}

func TestAcceptRulesDirectMessageFailure(t *testing.T) {
	f := newFixture(t, testCatalog())
	f.guild.AddMember(model.Member{ID: "42", Username: "louis"})
	f.guild.FailDirect = true

	err := f.onboarding.AcceptRules(f.ctx, testGuildID, f.rulesChannelID, "42", constant.RULES_EMOJI)
	require.NoError(t, err)
	assert.True(t, f.member(t, "42").HasRole(f.leagueRoleID))
	assert.True(t, f.botLogged("Failed to send team selection dropdown to <@42>'s DM"))
}

func TestTeamPromptsSplit(t *testing.T) {
	f := newFixture(t, largeCatalog(60))

	prompts := f.onboarding.TeamPrompts()
	require.Len(t, prompts, 3)
	assert.Len(t, prompts[0].Select.Options, 25)
	assert.Len(t, prompts[1].Select.Options, 25)
	assert.Len(t, prompts[2].Select.Options, 10)
	assert.Equal(t, "Team 50 Mascots", prompts[2].Select.Options[0].Value)
	for _, prompt := range prompts {
		assert.Equal(t, constant.TEAM_SELECT_ID, prompt.Select.CustomID)
	}
}

func TestResolveGuild(t *testing.T) {
	f := newFixture(t, testCatalog())
	f.guild.AddMember(model.Member{ID: "42", Username: "louis"})

	guildID, err := f.onboarding.ResolveGuild(f.ctx, "900", "42")
	require.NoError(t, err)
	assert.Equal(t, "900", guildID, "an explicit guild is used as is")

	guildID, err = f.onboarding.ResolveGuild(f.ctx, "", "42")
	require.NoError(t, err)
	assert.Equal(t, testGuildID, guildID)

	f.guild.SetMemberGuilds("42", nil)
	_, err = f.onboarding.ResolveGuild(f.ctx, "", "42")
	assert.ErrorIs(t, err, model.ErrGuildNotResolved)

	f.guild.SetMemberGuilds("42", []string{"500", "600"})
	_, err = f.onboarding.ResolveGuild(f.ctx, "", "42")
	assert.ErrorIs(t, err, model.ErrGuildNotResolved)

	_, err = f.onboarding.SelectTeam(f.ctx, "", "42", "Ohio State Buckeyes")
	assert.ErrorIs(t, err, model.ErrGuildNotResolved)
}

func TestSelectTeam(t *testing.T) {
	t.Run("unknown team", func(t *testing.T) {
		f := newFixture(t, testCatalog())
		f.guild.AddMember(model.Member{ID: "42", Username: "louis", RoleIDs: []string{f.leagueRoleID}})

		_, err := f.onboarding.SelectTeam(f.ctx, testGuildID, "42", "Notre Dame")
		requireValidation(t, err, constant.ERR_VALIDATION_CODE, "team")
	})

	t.Run("switching team drops the old team role", func(t *testing.T) {
		f := newFixture(t, testCatalog())
		michigan := f.guild.AddRole("Michigan Wolverines")
		f.guild.AddMember(model.Member{ID: "42", Username: "louis", RoleIDs: []string{f.leagueRoleID, michigan}})

		reply, err := f.onboarding.SelectTeam(f.ctx, testGuildID, "42", "Alabama Crimson Tide")
		require.NoError(t, err)
		assert.True(t, f.member(t, "42").HasRole(michigan), "the old role stays until the modal is out")
		assert.False(t, f.botLogged("selected team"))

		require.NotNil(t, reply.FollowUp)
		reply.FollowUp(f.ctx)

		member := f.member(t, "42")
		assert.False(t, member.HasRole(michigan))
		assert.True(t, member.HasRole(f.roleID(t, "Alabama Crimson Tide")))
		assert.True(t, member.HasRole(f.leagueRoleID))
	})

	t.Run("role creation failure opens a ticket", func(t *testing.T) {
		f := newFixture(t, testCatalog())
		f.guild.AddMember(model.Member{ID: "42", Username: "louis", RoleIDs: []string{f.leagueRoleID}})
		f.guild.FailCreateRole["Ohio State Buckeyes"] = true

		reply, err := f.onboarding.SelectTeam(f.ctx, testGuildID, "42", "Ohio State Buckeyes")
		require.NoError(t, err)
		assert.Equal(t, "Sorry, I couldn't create the role for 'Ohio State Buckeyes'. A support ticket has been opened.", reply.Content)
		assert.Nil(t, reply.FollowUp, "nothing to clean up after a failure")
		assert.Equal(t, 1, f.guild.ChannelsNamed("ticket-42"))
		assert.True(t, f.botLogged("Failed to create role 'Ohio State Buckeyes' for user louis (ID: 42)"))
	})

	t.Run("role assignment failure opens a ticket", func(t *testing.T) {
		f := newFixture(t, testCatalog())
		f.guild.AddMember(model.Member{ID: "42", Username: "louis", RoleIDs: []string{f.leagueRoleID}})
		f.guild.AddRole("Ohio State Buckeyes")
		f.guild.FailAddRole["Ohio State Buckeyes"] = true

		reply, err := f.onboarding.SelectTeam(f.ctx, testGuildID, "42", "Ohio State Buckeyes")
		require.NoError(t, err)
		assert.Equal(t, "Sorry, I couldn't assign the role 'Ohio State Buckeyes' to you. A support ticket has been opened.", reply.Content)
		assert.Equal(t, 1, f.guild.ChannelsNamed("ticket-42"))
	})
}

func TestSubmitNicknameRejected(t *testing.T) {
	f := newFixture(t, testCatalog())
	ohio := f.guild.AddRole("Ohio State Buckeyes")
	f.guild.AddMember(model.Member{ID: "42", Username: "louis", RoleIDs: []string{f.leagueRoleID, ohio}})
	f.guild.AddMember(model.Member{ID: "43", Username: "ana", Nickname: "go buckeyes!", RoleIDs: []string{f.leagueRoleID, ohio}})
	f.guild.AddMember(model.Member{ID: "44", Username: "max", RoleIDs: []string{f.leagueRoleID}})

	tests := []struct {
		name     string
		memberID string
		nickname string
		code     string
		param    string
	}{
		{name: "too short", memberID: "42", nickname: " ab ", code: constant.ERR_VALIDATION_CODE, param: "nickname"},
		{name: "too long", memberID: "42", nickname: "Buckeyes abcdefghijklmnopqrstuvwxyz", code: constant.ERR_VALIDATION_CODE, param: "nickname"},
		{name: "no team word", memberID: "42", nickname: "Go Bucks!", code: constant.ERR_VALIDATION_CODE, param: "nickname"},
		{name: "taken ignoring case", memberID: "42", nickname: "Go Buckeyes!", code: constant.ERR_CONFLICT_ERROR, param: "nickname"},
		{name: "team role no longer held", memberID: "44", nickname: "Max Buckeyes", code: constant.ERR_VALIDATION_CODE, param: "team"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.onboarding.SubmitNickname(f.ctx, testGuildID, tt.memberID, "Ohio State Buckeyes", tt.nickname)
			requireValidation(t, err, tt.code, tt.param)
		})
	}

	assert.Empty(t, f.member(t, "42").Nickname, "rejected nicknames are never applied")
	assert.Zero(t, f.guild.Writes, "rejected nicknames do not touch channel access")
}

func TestSubmitNicknameOwnNickname(t *testing.T) {
	f := newFixture(t, testCatalog())
	ohio := f.guild.AddRole("Ohio State Buckeyes")
	f.guild.AddMember(model.Member{ID: "42", Username: "louis", Nickname: "Go Buckeyes!", RoleIDs: []string{f.leagueRoleID, ohio}})

	_, err := f.onboarding.SubmitNickname(f.ctx, testGuildID, "42", "Ohio State Buckeyes", "go buckeyes!")
	require.NoError(t, err, "a member may keep their own nickname")
}

func TestSubmitNicknameFailure(t *testing.T) {
	f := newFixture(t, testCatalog())
	ohio := f.guild.AddRole("Ohio State Buckeyes")
	f.guild.AddMember(model.Member{ID: "42", Username: "louis", RoleIDs: []string{f.leagueRoleID, ohio}})
	f.guild.FailNickname = true

	reply, err := f.onboarding.SubmitNickname(f.ctx, testGuildID, "42", "Ohio State Buckeyes", "Go Buckeyes!")
	require.NoError(t, err)
	assert.Equal(t, "There was an error setting your nickname. A support ticket has been opened.", reply.Content)
	assert.Equal(t, 1, f.guild.ChannelsNamed("ticket-42"))
	assert.Zero(t, f.memberOverwrite(t, "general", "42").Allow, "access must not open on failure")
}

func TestChangeTeam(t *testing.T) {
	f := newFixture(t, testCatalog())
	ohio := f.guild.AddRole("Ohio State Buckeyes")
	f.guild.AddMember(model.Member{ID: "42", Username: "louis", Nickname: "Go Buckeyes!", RoleIDs: []string{f.leagueRoleID, ohio}})

	reply, err := f.onboarding.ChangeTeam(f.ctx, "", "42")
	require.NoError(t, err)
	assert.Equal(t, "Your team has been reset. Check your DMs to choose a new team.", reply.Content)

	member := f.member(t, "42")
	assert.False(t, member.HasRole(ohio))
	assert.True(t, member.HasRole(f.leagueRoleID), "League Member is kept")
	assert.Len(t, f.guild.Direct["42"], 2, "prompts are sent again")
}
