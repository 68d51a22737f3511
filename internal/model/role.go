package model

type Role struct {
	ID   string
	Name string
}

// GuildRoles indexes the guild role list by id and by name.
type GuildRoles struct {
	EveryoneID string
	byID       map[string]Role
	byName     map[string]Role
}

func NewGuildRoles(guildID string, roles []Role) GuildRoles {
	index := GuildRoles{
		EveryoneID: guildID,
		byID:       make(map[string]Role, len(roles)),
		byName:     make(map[string]Role, len(roles)),
	}

	for _, role := range roles {
		index.byID[role.ID] = role
		if _, exists := index.byName[role.Name]; !exists {
			index.byName[role.Name] = role
		}
	}

	return index
}

func (g GuildRoles) ByName(name string) (Role, bool) {
	role, ok := g.byName[name]
	return role, ok
}

func (g GuildRoles) ByID(id string) (Role, bool) {
	role, ok := g.byID[id]
	return role, ok
}
