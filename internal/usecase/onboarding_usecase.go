package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ferdian3456/leaguebot/internal/constant"
	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/ferdian3456/leaguebot/internal/policy"
	"github.com/ferdian3456/leaguebot/internal/repository"
	"github.com/ferdian3456/leaguebot/internal/util"
	"go.uber.org/zap"
)

const rulesGuardTTL = 10 * time.Second

// OnboardingUsecase drives a member from joining to a full league member. The stage is never
// stored: every transition re-reads roles and nickname from the guild.
type OnboardingUsecase struct {
	GuildRepository      repository.GuildRepository
	EventGuardRepository *repository.EventGuardRepository
	AccessUsecase        *AccessUsecase
	RoleUsecase          *RoleUsecase
	TicketUsecase        *TicketUsecase
	BotLogUsecase        *BotLogUsecase
	Catalog              *model.Catalog
	Log                  *zap.Logger
}

func NewOnboardingUsecase(guildRepository repository.GuildRepository, eventGuardRepository *repository.EventGuardRepository, accessUsecase *AccessUsecase, roleUsecase *RoleUsecase, ticketUsecase *TicketUsecase, botLogUsecase *BotLogUsecase, catalog *model.Catalog, zap *zap.Logger) *OnboardingUsecase {
	return &OnboardingUsecase{
		GuildRepository:      guildRepository,
		EventGuardRepository: eventGuardRepository,
		AccessUsecase:        accessUsecase,
		RoleUsecase:          roleUsecase,
		TicketUsecase:        ticketUsecase,
		BotLogUsecase:        botLogUsecase,
		Catalog:              catalog,
		Log:                  zap,
	}
}

func (usecase *OnboardingUsecase) MemberJoined(ctx context.Context, guildID string, memberID string) error {
	member, err := usecase.GuildRepository.GetMember(ctx, guildID, memberID)
	if err != nil {
		return err
	}

	result, err := usecase.AccessUsecase.ApplyPolicy(ctx, guildID, memberID)
	if err != nil {
		return err
	}
	if sweepErr := result.Err(); sweepErr != nil {
		usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("Failed to restrict channels for %s: %v", member.Mention(), sweepErr))
	}

	usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("%s joined the server. Welcome message sent.", member.Mention()))
	return nil
}

// AcceptRules handles a reaction. Anything but the rules emoji on a message in #rules is ignored.
func (usecase *OnboardingUsecase) AcceptRules(ctx context.Context, guildID string, channelID string, memberID string, emoji string) error {
	if emoji != constant.RULES_EMOJI {
		return nil
	}

	channels, err := usecase.GuildRepository.ListChannels(ctx, guildID)
	if err != nil {
		return err
	}
	if !isChannel(channels, channelID, constant.RULES_CHANNEL) {
		return nil
	}

	acquired, err := usecase.EventGuardRepository.Acquire(ctx, fmt.Sprintf("rules:%s:%s", guildID, memberID), rulesGuardTTL)
	if err != nil {
		usecase.Log.Warn("rules guard unavailable", zap.String("member_id", memberID), zap.Error(err))
	} else if !acquired {
		usecase.Log.Debug("duplicate rules reaction ignored", zap.String("member_id", memberID))
		return nil
	}

	member, err := usecase.GuildRepository.GetMember(ctx, guildID, memberID)
	if err != nil {
		return err
	}

	role, err := usecase.RoleUsecase.FindRole(ctx, guildID, constant.LEAGUE_MEMBER_ROLE)
	if errors.Is(err, model.ErrRoleNotFound) {
		usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("%s role does not exist. Run !setup_basic_roles first.", constant.LEAGUE_MEMBER_ROLE))
		return nil
	}
	if err != nil {
		return err
	}

	err = usecase.GuildRepository.AddMemberRole(ctx, guildID, memberID, role.ID)
	if err != nil {
		usecase.reportFailure(ctx, guildID, member, fmt.Sprintf("Failed to add role '%s' to user %s (ID: %s): %v", role.Name, member.DisplayName(), member.ID, err))
		return nil
	}

	result, err := usecase.AccessUsecase.ApplyPolicy(ctx, guildID, memberID)
	if err != nil {
		return err
	}
	if sweepErr := result.Err(); sweepErr != nil {
		usecase.reportFailure(ctx, guildID, member, fmt.Sprintf("Failed to update channel access for %s: %v", member.DisplayName(), sweepErr))
	}

	usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("%s has accepted the rules and can now select a team in #%s!", member.Mention(), constant.TEAM_SELECTION_CHANNEL))
	usecase.SendTeamPrompts(ctx, guildID, member)

	return nil
}

// TeamPrompts builds one select prompt per conference, split so no prompt exceeds the option limit.
func (usecase *OnboardingUsecase) TeamPrompts() []model.OutgoingMessage {
	var prompts []model.OutgoingMessage

	for _, conference := range usecase.Catalog.Conferences {
		for _, teams := range util.ChunkSlice(conference.Teams, constant.MAX_SELECT_OPTIONS) {
			options := make([]model.SelectOption, 0, len(teams))
			for _, team := range teams {
				options = append(options, model.SelectOption{
					Label:       team.Name,
					Value:       team.Name,
					Description: team.Name,
				})
			}

			prompts = append(prompts, model.OutgoingMessage{
				Content: fmt.Sprintf("Choose your %s conference team:", conference.Name),
				Select: &model.SelectMenu{
					CustomID:    constant.TEAM_SELECT_ID,
					Placeholder: "Choose your NCAA team...",
					Options:     options,
				},
			})
		}
	}

	return prompts
}

func (usecase *OnboardingUsecase) SendTeamPrompts(ctx context.Context, guildID string, member model.Member) {
	for _, prompt := range usecase.TeamPrompts() {
		err := usecase.GuildRepository.SendDirectMessage(ctx, member.ID, prompt)
		if err != nil {
			usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("Failed to send team selection dropdown to %s's DM: %v", member.Mention(), err))
			return
		}
	}

	usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("Sent team selection dropdown to %s's DM.", member.Mention()))
}

// ResolveGuild maps an interaction to its guild. Interactions from a DM resolve to the single guild
// the user shares with the bot.
func (usecase *OnboardingUsecase) ResolveGuild(ctx context.Context, guildID string, userID string) (string, error) {
	if guildID != "" {
		return guildID, nil
	}

	guilds, err := usecase.GuildRepository.MemberGuilds(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(guilds) != 1 {
		return "", model.ErrGuildNotResolved
	}

	return guilds[0], nil
}

// SelectTeam grants the team role and asks for a nickname. Platform failures open a ticket and are
// answered with a reply rather than an error. Dropping the previous team role and the bot log entry
// are left to the reply's FollowUp so the modal goes out first.
func (usecase *OnboardingUsecase) SelectTeam(ctx context.Context, guildID string, userID string, teamName string) (model.Reply, error) {
	guildID, err := usecase.ResolveGuild(ctx, guildID, userID)
	if err != nil {
		return model.Reply{}, err
	}

	if !usecase.Catalog.HasTeam(teamName) {
		return model.Reply{}, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("'%s' is not a team in this league.", teamName),
			Param:   "team",
		}
	}

	member, err := usecase.GuildRepository.GetMember(ctx, guildID, userID)
	if err != nil {
		return model.Reply{}, err
	}

	role, _, err := usecase.RoleUsecase.EnsureRole(ctx, guildID, teamName)
	if err != nil {
		usecase.reportFailure(ctx, guildID, member, fmt.Sprintf("Failed to create role '%s' for user %s (ID: %s): %v", teamName, member.DisplayName(), member.ID, err))
		return model.MessageReply(fmt.Sprintf("Sorry, I couldn't create the role for '%s'. A support ticket has been opened.", teamName)), nil
	}

	err = usecase.GuildRepository.AddMemberRole(ctx, guildID, member.ID, role.ID)
	if err != nil {
		usecase.reportFailure(ctx, guildID, member, fmt.Sprintf("Failed to add role '%s' to user %s (ID: %s): %v", teamName, member.DisplayName(), member.ID, err))
		return model.MessageReply(fmt.Sprintf("Sorry, I couldn't assign the role '%s' to you. A support ticket has been opened.", teamName)), nil
	}

	return model.Reply{
		Kind:            model.ReplyNicknameModal,
		TeamName:        teamName,
		DefaultNickname: util.DefaultNickname(member.Username, teamName, constant.MAX_NICKNAME),
		FollowUp: func(ctx context.Context) {
			usecase.removeTeamRoles(ctx, guildID, member, role.ID)
			usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("%s selected team %s.", member.Mention(), teamName))
		},
	}, nil
}

// SubmitNickname validates and sets the nickname, then opens the league channels to the member.
// Validation failures come back as *model.ValidationError and leave the member where they were.
func (usecase *OnboardingUsecase) SubmitNickname(ctx context.Context, guildID string, userID string, teamName string, nickname string) (model.Reply, error) {
	guildID, err := usecase.ResolveGuild(ctx, guildID, userID)
	if err != nil {
		return model.Reply{}, err
	}

	nickname = strings.TrimSpace(nickname)
	length := len([]rune(nickname))
	if length < constant.MIN_NICKNAME || length > constant.MAX_NICKNAME {
		return model.Reply{}, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Your nickname must be between %d and %d characters.", constant.MIN_NICKNAME, constant.MAX_NICKNAME),
			Param:   "nickname",
		}
	}

	if !usecase.Catalog.HasTeam(teamName) {
		return model.Reply{}, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("'%s' is not a team in this league.", teamName),
			Param:   "team",
		}
	}

	if !util.SharesWord(nickname, teamName) {
		return model.Reply{}, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Your nickname must include at least one word from '%s'. Please try again.", teamName),
			Param:   "nickname",
		}
	}

	member, state, err := usecase.AccessUsecase.MemberState(ctx, guildID, userID)
	if err != nil {
		return model.Reply{}, err
	}
	if state.TeamName != teamName {
		return model.Reply{}, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("You no longer have the '%s' role. Please pick your team again.", teamName),
			Param:   "team",
		}
	}

	members, err := usecase.GuildRepository.ListMembers(ctx, guildID)
	if err != nil {
		return model.Reply{}, err
	}
	for _, other := range members {
		if other.ID != member.ID && util.SameNickname(other.Nickname, nickname) {
			return model.Reply{}, &model.ValidationError{
				Code:    constant.ERR_CONFLICT_ERROR,
				Message: "This nickname is already taken by another member. Please choose a different one.",
				Param:   "nickname",
			}
		}
	}

	err = usecase.GuildRepository.SetNickname(ctx, guildID, member.ID, nickname)
	if err != nil {
		usecase.reportFailure(ctx, guildID, member, fmt.Sprintf("Failed to set nickname: %v", err))
		return model.MessageReply("There was an error setting your nickname. A support ticket has been opened."), nil
	}

	result, err := usecase.AccessUsecase.ApplyPolicy(ctx, guildID, member.ID)
	if err == nil {
		err = result.Err()
	}
	if err != nil {
		usecase.reportFailure(ctx, guildID, member, fmt.Sprintf("Failed to set nickname: %v", err))
		return model.MessageReply("There was an error setting your nickname. A support ticket has been opened."), nil
	}

	usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("%s nickname set to: %s. Access granted to all league channels.", member.Mention(), nickname))
	return model.MessageReply(fmt.Sprintf("Your nickname has been set to: %s. You now have access to all league channels!", nickname)), nil
}

// ChangeTeam drops every team role the member holds and sends the prompts again. The League Member
// role and channel access stay as they are.
func (usecase *OnboardingUsecase) ChangeTeam(ctx context.Context, guildID string, userID string) (model.Reply, error) {
	guildID, err := usecase.ResolveGuild(ctx, guildID, userID)
	if err != nil {
		return model.Reply{}, err
	}

	member, err := usecase.GuildRepository.GetMember(ctx, guildID, userID)
	if err != nil {
		return model.Reply{}, err
	}

	usecase.removeTeamRoles(ctx, guildID, member, "")
	usecase.SendTeamPrompts(ctx, guildID, member)

	return model.MessageReply("Your team has been reset. Check your DMs to choose a new team."), nil
}

// removeTeamRoles revokes the catalog team roles the member holds, except keepRoleID.
func (usecase *OnboardingUsecase) removeTeamRoles(ctx context.Context, guildID string, member model.Member, keepRoleID string) {
	roles, err := usecase.GuildRepository.ListRoles(ctx, guildID)
	if err != nil {
		usecase.Log.Warn("failed to list roles", zap.String("guild_id", guildID), zap.Error(err))
		return
	}

	for _, role := range policy.HeldTeamRoles(member, model.NewGuildRoles(guildID, roles), usecase.Catalog) {
		if role.ID == keepRoleID {
			continue
		}

		err = usecase.GuildRepository.RemoveMemberRole(ctx, guildID, member.ID, role.ID)
		if err != nil {
			usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("Failed to remove role '%s' from %s: %v", role.Name, member.Mention(), err))
			continue
		}
		usecase.Log.Info("removed team role", zap.String("member_id", member.ID), zap.String("role", role.Name))
	}
}

// reportFailure mirrors an automation failure to #bot-logs and to the member's ticket.
func (usecase *OnboardingUsecase) reportFailure(ctx context.Context, guildID string, member model.Member, detail string) {
	usecase.Log.Error("onboarding step failed", zap.String("guild_id", guildID), zap.String("member_id", member.ID), zap.String("detail", detail))
	usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("%s %s", member.Mention(), detail))

	_, err := usecase.TicketUsecase.OpenOrAppend(ctx, guildID, member, detail)
	if err != nil {
		usecase.Log.Error("failed to open ticket", zap.String("member_id", member.ID), zap.Error(err))
		usecase.BotLogUsecase.Send(ctx, guildID, fmt.Sprintf("Failed to open a ticket for %s: %v", member.Mention(), err))
	}
}

func isChannel(channels []model.Channel, channelID string, name string) bool {
	for _, channel := range channels {
		if channel.ID == channelID {
			return channel.Name == name
		}
	}
	return false
}
