package database

import (
	"context"
	"flag"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DarkFrame_Go/internal/testing/leaktest"
	"github.com/osse101/DarkFrame_Go/internal/testing/pgtest"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	terminate := func() {}
	if !testing.Short() {
		testDBConnString, terminate = pgtest.Start(context.Background())
	}

	code := m.Run()
	terminate()
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}
}

func testPoolConfig(maxConns int) PoolConfig {
	return PoolConfig{MaxConns: maxConns, MaxConnIdleTime: time.Minute, MaxConnLifetime: 5 * time.Minute}
}

func TestNewPool_InvalidConnString(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://%zz", testPoolConfig(5))
	assert.ErrorContains(t, err, ErrMsgFailedToParseConnString)
}

func TestMigrate_CreatesSchema(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	pool, err := NewPool(ctx, testDBConnString, testPoolConfig(5))
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, Migrate(ctx, pool))
	// a second run is a no-op
	require.NoError(t, Migrate(ctx, pool))

	for _, table := range []string{"players", "harvest_records", "factories", "flag_bots"} {
		var exists bool
		err := pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)", table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist", table)
	}

	// migrating through database/sql must not hold pool connections
	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())
}

// TestPool_ConcurrentAccess checks connections are returned under load
func TestPool_ConcurrentAccess(t *testing.T) {
	requireDB(t)

	pool, err := NewPool(context.Background(), testDBConnString, testPoolConfig(10))
	require.NoError(t, err)
	defer pool.Close()

	checker := leaktest.NewGoroutineChecker(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			ctx := context.Background()
			var result int
			if err := pool.QueryRow(ctx, "SELECT $1::int", id).Scan(&result); err != nil {
				t.Errorf("worker %d query failed: %v", id, err)
				return
			}
			if result != id {
				t.Errorf("worker %d got %d", id, result)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())
	checker.Check(2)
}

func TestNewPool_SessionsRunInUTC(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	pool, err := NewPool(ctx, testDBConnString, PoolConfig{MaxConns: 2})
	require.NoError(t, err)
	defer pool.Close()

	var tz string
	require.NoError(t, pool.QueryRow(ctx, "SHOW timezone").Scan(&tz))
	assert.Equal(t, "UTC", tz)
	assert.Equal(t, int32(2), pool.Config().MaxConns)
	assert.Equal(t, int32(2), pool.Config().MinConns)
}
