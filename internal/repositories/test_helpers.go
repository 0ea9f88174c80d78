package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/BradenHooton/refusebot/internal/config"
	"github.com/BradenHooton/refusebot/internal/store"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

// newTestStore spins up an in-process Redis and a Store connected to it.
// Both are torn down with the test.
func newTestStore(t *testing.T) (*store.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	s, err := store.NewStore(&config.RedisConfig{
		Addr:        mr.Addr(),
		PoolSize:    10,
		DialTimeout: time.Second,
		OpTimeout:   time.Second,
	}, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s, mr
}
