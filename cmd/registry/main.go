package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/medcouncil/registry/internal/clock"
	"github.com/medcouncil/registry/internal/config"
	"github.com/medcouncil/registry/internal/migration"
	"github.com/medcouncil/registry/internal/observability"
	"github.com/medcouncil/registry/internal/server"
	"github.com/medcouncil/registry/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// HTTP surface plus every domain module it serves
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
