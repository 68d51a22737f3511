package model

type Team struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
}

type Conference struct {
	Name  string `json:"name"`
	Teams []Team `json:"teams"`
}

// Catalog is immutable once loaded. Conferences keep the order of the source file.
type Catalog struct {
	Conferences []Conference
	byName      map[string]Team
}

func NewCatalog(conferences []Conference) *Catalog {
	byName := make(map[string]Team)
	for _, conference := range conferences {
		for _, team := range conference.Teams {
			byName[team.Name] = team
		}
	}

	return &Catalog{
		Conferences: conferences,
		byName:      byName,
	}
}

func (c *Catalog) Team(name string) (Team, bool) {
	team, ok := c.byName[name]
	return team, ok
}

func (c *Catalog) HasTeam(name string) bool {
	_, ok := c.byName[name]
	return ok
}

func (c *Catalog) Teams() []Team {
	teams := make([]Team, 0, len(c.byName))
	for _, conference := range c.Conferences {
		teams = append(teams, conference.Teams...)
	}
	return teams
}

func (c *Catalog) TeamCount() int {
	return len(c.byName)
}

type CatalogResponse struct {
	TeamCount   int          `json:"teamCount"`
	Conferences []Conference `json:"conferences"`
}
