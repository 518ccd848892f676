package migration

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/domora/internal/config"
	"github.com/smallbiznis/domora/internal/identity"
	listingdomain "github.com/smallbiznis/domora/internal/listing/domain"
	"github.com/smallbiznis/domora/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, genID *snowflake.Node) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite/mysql dev setups derive the schema from the models.
			if err := conn.AutoMigrate(&identity.Owner{}, &listingdomain.Listing{}); err != nil {
				return err
			}
		}

		if cfg.Bootstrap.SeedDevOwner && !cfg.IsProduction() {
			return seed.EnsureDevOwner(conn, genID)
		}
		return nil
	}),
)
