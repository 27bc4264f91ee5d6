package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cleaning-console/pkg/config"
)

func TestNewStorageRepository(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cases := []struct {
		name   string
		mutate func(cfg *config.Config)
		want   any
	}{
		{"file", func(cfg *config.Config) { cfg.Storage.Driver = StorageDriverFile }, &FileStorageRepository{}},
		{"default", func(cfg *config.Config) { cfg.Storage.Driver = "" }, &FileStorageRepository{}},
		{"memory", func(cfg *config.Config) { cfg.Storage.Driver = StorageDriverMemory }, &MemoryStorageRepository{}},
		{"redis", func(cfg *config.Config) {
			cfg.Storage.Driver = StorageDriverRedis
			cfg.Redis.Address = mr.Addr()
		}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Storage.FilePath = filepath.Join(t.TempDir(), "session.json")
			cfg.Redis.Prefix = "test:"
			tc.mutate(cfg)

			repo, closeFn, err := NewStorageRepository(ctx, cfg, zap.NewNop())
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, closeFn()) })
			if tc.want != nil {
				assert.IsType(t, tc.want, repo)
			}

			require.NoError(t, repo.Set(ctx, KeyToken, "abc"))
			got, err := repo.Get(ctx, KeyToken)
			require.NoError(t, err)
			assert.Equal(t, "abc", got)
		})
	}
}

func TestNewStorageRepository_Errors(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{}
	cfg.Storage.Driver = "sqlite"
	_, _, err := NewStorageRepository(ctx, cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unknown storage driver")

	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	cfg.Storage.Driver = StorageDriverRedis
	cfg.Redis.Address = addr
	_, _, err = NewStorageRepository(ctx, cfg, zap.NewNop())
	assert.ErrorContains(t, err, "failed to connect to redis")
}
