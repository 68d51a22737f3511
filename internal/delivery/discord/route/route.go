package route

import (
	"github.com/bwmarrin/discordgo"
	"github.com/ferdian3456/leaguebot/internal/delivery/discord"
)

type RouteConfig struct {
	Session              *discordgo.Session
	OnboardingController *discord.OnboardingController
	CommandController    *discord.CommandController
}

func (c *RouteConfig) SetupRoute() {
	c.Session.AddHandler(c.OnboardingController.MemberAdd)
	c.Session.AddHandler(c.OnboardingController.ReactionAdd)
	c.Session.AddHandler(c.OnboardingController.InteractionCreate)
	c.Session.AddHandler(c.CommandController.MessageCreate)
}
