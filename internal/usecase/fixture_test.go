package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ferdian3456/leaguebot/internal/constant"
	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/ferdian3456/leaguebot/internal/repository"
	"github.com/ferdian3456/leaguebot/internal/repository/repositorytest"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testGuildID = "500"

type fixture struct {
	ctx   context.Context
	guild *repositorytest.MemoryGuildRepository

	access     *AccessUsecase
	role       *RoleUsecase
	ticket     *TicketUsecase
	botLog     *BotLogUsecase
	onboarding *OnboardingUsecase
	admin      *AdminUsecase

	rulesChannelID         string
	teamSelectionChannelID string
	generalChannelID       string
	leagueRoleID           string
	adminRoleID            string
	mediaRoleID            string
}

func testCatalog() *model.Catalog {
	return model.NewCatalog([]model.Conference{
		{Name: "Big Ten", Teams: []model.Team{{Name: "Ohio State Buckeyes"}, {Name: "Michigan Wolverines"}}},
		{Name: "SEC", Teams: []model.Team{{Name: "Alabama Crimson Tide"}}},
	})
}

func largeCatalog(teams int) *model.Catalog {
	conference := model.Conference{Name: "FBS"}
	for i := 0; i < teams; i++ {
		conference.Teams = append(conference.Teams, model.Team{Name: fmt.Sprintf("Team %02d Mascots", i)})
	}
	return model.NewCatalog([]model.Conference{conference})
}

// newBareFixture seeds the league channels but no roles.
func newBareFixture(t *testing.T, catalog *model.Catalog) *fixture {
	t.Helper()

	log := zap.NewNop()
	config := koanf.New(".")
	guild := repositorytest.NewMemoryGuildRepository(testGuildID)

	f := &fixture{ctx: context.Background(), guild: guild}
	guild.AddChannel(constant.WELCOME_CHANNEL, model.ChannelKindText)
	f.rulesChannelID = guild.AddChannel(constant.RULES_CHANNEL, model.ChannelKindText)
	f.teamSelectionChannelID = guild.AddChannel(constant.TEAM_SELECTION_CHANNEL, model.ChannelKindText)
	guild.AddChannel(constant.BOT_LOGS_CHANNEL, model.ChannelKindText)
	f.generalChannelID = guild.AddChannel("general", model.ChannelKindText)
	guild.AddChannel("trophy-room", model.ChannelKindText)
	guild.AddChannel("admin-chat", model.ChannelKindText)
	guild.AddChannel(constant.STAFF_VOICE_CHANNEL, model.ChannelKindVoice)
	guild.AddChannel("lounge", model.ChannelKindVoice)

	eventGuard := repository.NewEventGuardRepository(log, nil)
	ticketAudit := repository.NewTicketAuditRepository(log, nil)

	f.botLog = NewBotLogUsecase(guild, log)
	f.access = NewAccessUsecase(guild, catalog, log)
	f.role = NewRoleUsecase(guild, log)
	f.ticket = NewTicketUsecase(guild, ticketAudit, eventGuard, log, config)
	f.onboarding = NewOnboardingUsecase(guild, eventGuard, f.access, f.role, f.ticket, f.botLog, catalog, log)
	f.admin = NewAdminUsecase(guild, f.access, f.role, f.ticket, f.onboarding, f.botLog, catalog, log, config)

	return f
}

func newFixture(t *testing.T, catalog *model.Catalog) *fixture {
	t.Helper()

	f := newBareFixture(t, catalog)
	f.leagueRoleID = f.guild.AddRole(constant.LEAGUE_MEMBER_ROLE)
	f.adminRoleID = f.guild.AddRole(constant.ADMIN_ROLE)
	f.mediaRoleID = f.guild.AddRole(constant.MEDIA_ROLE)
	return f
}

func (f *fixture) member(t *testing.T, id string) model.Member {
	t.Helper()

	member, err := f.guild.GetMember(f.ctx, testGuildID, id)
	require.NoError(t, err, "member %s should exist", id)
	return member
}

func (f *fixture) memberOverwrite(t *testing.T, channelName string, memberID string) model.Overwrite {
	t.Helper()

	channel, ok := f.guild.Channel(channelName)
	require.True(t, ok, "channel %s should exist", channelName)

	overwrite, _ := channel.Overwrite(model.TargetMember, memberID)
	return overwrite
}

func (f *fixture) botLogs() []string {
	var logs []string
	for _, message := range f.guild.MessagesIn(constant.BOT_LOGS_CHANNEL) {
		logs = append(logs, message.Content)
	}
	return logs
}

func (f *fixture) botLogged(substr string) bool {
	for _, entry := range f.botLogs() {
		if strings.Contains(entry, substr) {
			return true
		}
	}
	return false
}

func (f *fixture) roleID(t *testing.T, name string) string {
	t.Helper()

	roles := f.guild.RolesNamed(name)
	require.Len(t, roles, 1, "exactly one %s role should exist", name)
	return roles[0].ID
}
