package migration

import (
	"github.com/medcouncil/registry/internal/config"
	"github.com/medcouncil/registry/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if err := RunMigrations(sqlDB); err != nil {
			return err
		}

		return seed.Ensure(conn, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword)
	}),
)
