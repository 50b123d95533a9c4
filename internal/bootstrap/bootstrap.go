// Package bootstrap opens the configured backing store; shared by the
// server and the operator CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/cyberacademy/internal/config"
	"github.com/Skotchmaster/cyberacademy/internal/db"
	"github.com/Skotchmaster/cyberacademy/internal/hash"
	"github.com/Skotchmaster/cyberacademy/internal/models"
	"github.com/Skotchmaster/cyberacademy/internal/repo"
	"gorm.io/gorm"
)

type Backing struct {
	Store repo.Store
	DB    *gorm.DB
}

// OpenStore returns the in-memory store or a migrated gorm store.
func OpenStore(ctx context.Context, cfg config.Config) (*Backing, error) {
	if cfg.StorageDriver == config.DriverMemory {
		return &Backing{Store: repo.NewMemoryRepo()}, nil
	}

	gdb, err := db.Open(ctx, cfg.StorageDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	r := repo.NewGormRepo(gdb)
	if err := r.Migrate(ctx); err != nil {
		db.Close(gdb)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Backing{Store: r, DB: gdb}, nil
}

func (b *Backing) Ready(ctx context.Context) error {
	if b.DB == nil {
		return nil
	}
	sqlDB, err := b.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (b *Backing) Close() {
	if b.DB != nil {
		db.Close(b.DB)
	}
}

func AdminUser(username, password string) (*models.User, error) {
	pw, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &models.User{Username: username, PasswordHash: pw, IsAdmin: true}, nil
}
