package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/clock"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/config"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/logger"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/server"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(
			registerSnowflake,
			clock.System,
		),

		invoice.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
