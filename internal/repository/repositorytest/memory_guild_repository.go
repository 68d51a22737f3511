package repositorytest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/ferdian3456/leaguebot/internal/repository"
)

var _ repository.GuildRepository = (*MemoryGuildRepository)(nil)

var ErrInjected = errors.New("injected platform failure")

type SentMessage struct {
	ChannelID string
	Message   model.OutgoingMessage
}

// MemoryGuildRepository is an in-memory guild used by tests. It counts
// every write so callers can assert on idempotence.
type MemoryGuildRepository struct {
	mu sync.Mutex

	GuildID  string
	nextID   int
	channels []model.Channel
	roles    []model.Role
	members  map[string]*model.Member
	admins   map[string]bool
	guilds   map[string][]string

	Sent       []SentMessage
	Direct     map[string][]model.OutgoingMessage
	Reactions  map[string][]string
	Writes     int
	RoleCreate int

	FailCreateRole map[string]bool
	FailAddRole    map[string]bool
	FailOverwrite  map[string]bool
	FailNickname   bool
	FailDirect     bool

	// ListDelay stalls ListChannels so tests can overlap concurrent callers.
	ListDelay time.Duration
}

func NewMemoryGuildRepository(guildID string) *MemoryGuildRepository {
	return &MemoryGuildRepository{
		GuildID:        guildID,
		members:        make(map[string]*model.Member),
		admins:         make(map[string]bool),
		guilds:         make(map[string][]string),
		Direct:         make(map[string][]model.OutgoingMessage),
		Reactions:      make(map[string][]string),
		FailCreateRole: make(map[string]bool),
		FailAddRole:    make(map[string]bool),
		FailOverwrite:  make(map[string]bool),
	}
}

func (repository *MemoryGuildRepository) newID() string {
	repository.nextID++
	return strconv.Itoa(1000 + repository.nextID)
}

// AddChannel seeds a channel and returns its id.
func (repository *MemoryGuildRepository) AddChannel(name string, kind model.ChannelKind) string {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	id := repository.newID()
	repository.channels = append(repository.channels, model.Channel{ID: id, Name: name, Kind: kind})
	return id
}

// AddRole seeds a role and returns its id.
func (repository *MemoryGuildRepository) AddRole(name string) string {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	id := repository.newID()
	repository.roles = append(repository.roles, model.Role{ID: id, Name: name})
	return id
}

func (repository *MemoryGuildRepository) AddMember(member model.Member) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	copied := member
	copied.RoleIDs = append([]string(nil), member.RoleIDs...)
	repository.members[member.ID] = &copied
}

func (repository *MemoryGuildRepository) SetAdministrator(userID string, admin bool) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.admins[userID] = admin
}

// SetMemberGuilds overrides the mutual guild lookup for a user.
func (repository *MemoryGuildRepository) SetMemberGuilds(userID string, guildIDs []string) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.guilds[userID] = guildIDs
}

func (repository *MemoryGuildRepository) Channel(name string) (model.Channel, bool) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, channel := range repository.channels {
		if channel.Name == name {
			return cloneChannel(channel), true
		}
	}
	return model.Channel{}, false
}

func (repository *MemoryGuildRepository) RolesNamed(name string) []model.Role {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var result []model.Role
	for _, role := range repository.roles {
		if role.Name == name {
			result = append(result, role)
		}
	}
	return result
}

func (repository *MemoryGuildRepository) ChannelsNamed(name string) int {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	count := 0
	for _, channel := range repository.channels {
		if channel.Name == name {
			count++
		}
	}
	return count
}

func (repository *MemoryGuildRepository) MessagesIn(channelName string) []model.OutgoingMessage {
	channel, ok := repository.Channel(channelName)
	if !ok {
		return nil
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()

	var result []model.OutgoingMessage
	for _, sent := range repository.Sent {
		if sent.ChannelID == channel.ID {
			result = append(result, sent.Message)
		}
	}
	return result
}

func (repository *MemoryGuildRepository) ListChannels(ctx context.Context, guildID string) ([]model.Channel, error) {
	if repository.ListDelay > 0 {
		time.Sleep(repository.ListDelay)
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()

	result := make([]model.Channel, 0, len(repository.channels))
	for _, channel := range repository.channels {
		result = append(result, cloneChannel(channel))
	}
	return result, nil
}

func (repository *MemoryGuildRepository) CreateChannel(ctx context.Context, guildID string, data model.ChannelCreate) (model.Channel, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	channel := model.Channel{
		ID:         repository.newID(),
		Name:       data.Name,
		Kind:       data.Kind,
		Topic:      data.Topic,
		Overwrites: append([]model.Overwrite(nil), data.Overwrites...),
	}
	repository.channels = append(repository.channels, channel)
	return cloneChannel(channel), nil
}

func (repository *MemoryGuildRepository) DeleteChannel(ctx context.Context, channelID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for i, channel := range repository.channels {
		if channel.ID == channelID {
			repository.channels = append(repository.channels[:i], repository.channels[i+1:]...)
			return nil
		}
	}
	return model.ErrChannelNotFound
}

func (repository *MemoryGuildRepository) SetOverwrite(ctx context.Context, channelID string, overwrite model.Overwrite) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for i := range repository.channels {
		channel := &repository.channels[i]
		if channel.ID != channelID {
			continue
		}
		if repository.FailOverwrite[channel.Name] {
			return fmt.Errorf("set overwrite on %s: %w", channel.Name, ErrInjected)
		}

		repository.Writes++
		for j := range channel.Overwrites {
			if channel.Overwrites[j].TargetType == overwrite.TargetType && channel.Overwrites[j].TargetID == overwrite.TargetID {
				channel.Overwrites[j] = overwrite
				return nil
			}
		}
		channel.Overwrites = append(channel.Overwrites, overwrite)
		return nil
	}
	return model.ErrChannelNotFound
}

func (repository *MemoryGuildRepository) ListRoles(ctx context.Context, guildID string) ([]model.Role, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	return append([]model.Role(nil), repository.roles...), nil
}

func (repository *MemoryGuildRepository) CreateRole(ctx context.Context, guildID string, name string) (model.Role, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.FailCreateRole[name] {
		return model.Role{}, fmt.Errorf("create role %s: %w", name, ErrInjected)
	}

	repository.RoleCreate++
	role := model.Role{ID: repository.newID(), Name: name}
	repository.roles = append(repository.roles, role)
	return role, nil
}

func (repository *MemoryGuildRepository) AddMemberRole(ctx context.Context, guildID string, memberID string, roleID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	member, ok := repository.members[memberID]
	if !ok {
		return model.ErrMemberNotFound
	}
	for _, role := range repository.roles {
		if role.ID == roleID && repository.FailAddRole[role.Name] {
			return fmt.Errorf("add role %s: %w", role.Name, ErrInjected)
		}
	}
	if !member.HasRole(roleID) {
		member.RoleIDs = append(member.RoleIDs, roleID)
	}
	return nil
}

func (repository *MemoryGuildRepository) RemoveMemberRole(ctx context.Context, guildID string, memberID string, roleID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	member, ok := repository.members[memberID]
	if !ok {
		return model.ErrMemberNotFound
	}
	for i, id := range member.RoleIDs {
		if id == roleID {
			member.RoleIDs = append(member.RoleIDs[:i], member.RoleIDs[i+1:]...)
			break
		}
	}
	return nil
}

func (repository *MemoryGuildRepository) GetMember(ctx context.Context, guildID string, memberID string) (model.Member, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	member, ok := repository.members[memberID]
	if !ok {
		return model.Member{}, model.ErrMemberNotFound
	}
	copied := *member
	copied.RoleIDs = append([]string(nil), member.RoleIDs...)
	return copied, nil
}

func (repository *MemoryGuildRepository) ListMembers(ctx context.Context, guildID string) ([]model.Member, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	result := make([]model.Member, 0, len(repository.members))
	for _, member := range repository.members {
		copied := *member
		copied.RoleIDs = append([]string(nil), member.RoleIDs...)
		result = append(result, copied)
	}
	return result, nil
}

func (repository *MemoryGuildRepository) SetNickname(ctx context.Context, guildID string, memberID string, nickname string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.FailNickname {
		return fmt.Errorf("set nickname: %w", ErrInjected)
	}
	member, ok := repository.members[memberID]
	if !ok {
		return model.ErrMemberNotFound
	}
	member.Nickname = nickname
	return nil
}

func (repository *MemoryGuildRepository) MemberGuilds(ctx context.Context, userID string) ([]string, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if guilds, ok := repository.guilds[userID]; ok {
		return append([]string(nil), guilds...), nil
	}
	if _, ok := repository.members[userID]; ok {
		return []string{repository.GuildID}, nil
	}
	return nil, nil
}

func (repository *MemoryGuildRepository) IsAdministrator(ctx context.Context, channelID string, userID string) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	return repository.admins[userID], nil
}

func (repository *MemoryGuildRepository) SendMessage(ctx context.Context, channelID string, message model.OutgoingMessage) (string, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.Sent = append(repository.Sent, SentMessage{ChannelID: channelID, Message: message})
	return repository.newID(), nil
}

func (repository *MemoryGuildRepository) SendDirectMessage(ctx context.Context, userID string, message model.OutgoingMessage) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.FailDirect {
		return fmt.Errorf("send direct message: %w", ErrInjected)
	}
	repository.Direct[userID] = append(repository.Direct[userID], message)
	return nil
}

func (repository *MemoryGuildRepository) AddReaction(ctx context.Context, channelID string, messageID string, emoji string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.Reactions[messageID] = append(repository.Reactions[messageID], emoji)
	return nil
}

func cloneChannel(channel model.Channel) model.Channel {
	channel.Overwrites = append([]model.Overwrite(nil), channel.Overwrites...)
	return channel
}
