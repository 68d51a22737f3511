package config

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

func NewFiber() *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:               false,
		AppName:               "leaguebot",
		BodyLimit:             64 * 1024,
		ReadBufferSize:        4096,
		WriteBufferSize:       4096,
		IdleTimeout:           30 * time.Second,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		DisableKeepalive:      false,
		DisableStartupMessage: true,
		ReduceMemoryUsage:     true,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
	})

	return app
}
