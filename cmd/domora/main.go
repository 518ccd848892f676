package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/domora/internal/config"
	"github.com/smallbiznis/domora/internal/migration"
	"github.com/smallbiznis/domora/internal/observability"
	"github.com/smallbiznis/domora/internal/server"
	"github.com/smallbiznis/domora/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// HTTP surface (pulls in the listing and identity domains)
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
