package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Skotchmaster/cyberacademy/internal/config"
	"github.com/Skotchmaster/cyberacademy/internal/hash"
	"github.com/Skotchmaster/cyberacademy/internal/repo"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_Memory(t *testing.T) {
	b, err := OpenStore(context.Background(), config.Config{StorageDriver: config.DriverMemory})
	require.NoError(t, err)
	defer b.Close()

	require.Nil(t, b.DB)
	require.IsType(t, &repo.MemoryRepo{}, b.Store)
	require.NoError(t, b.Ready(context.Background()))
}

func TestOpenStore_SQLite(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "store.db")

	b, err := OpenStore(ctx, config.Config{StorageDriver: config.DriverSQLite, DatabaseURL: dsn})
	require.NoError(t, err)
	defer b.Close()

	require.NotNil(t, b.DB)
	require.NoError(t, b.Ready(ctx))

	admin, err := AdminUser("root", "s3cret")
	require.NoError(t, err)
	res, err := repo.Seed(ctx, b.Store, admin)
	require.NoError(t, err)
	require.Equal(t, 6, res.Courses)
	require.True(t, res.AdminCreated)

	u, err := b.Store.GetUserByUsername(ctx, "root")
	require.NoError(t, err)
	require.True(t, u.IsAdmin)
	require.True(t, hash.CheckPassword(u.PasswordHash, "s3cret"))
}

func TestOpenStore_MissingDSN(t *testing.T) {
	_, err := OpenStore(context.Background(), config.Config{StorageDriver: config.DriverSQLite})
	require.Error(t, err)
}
