//go:build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/kit-service/config"
	"github.com/guttosm/kit-service/internal/domain/model"
	"github.com/guttosm/kit-service/internal/testutil"
)

func TestInitializeDatabase_Integration(t *testing.T) {
	ctx := context.Background()
	cfg := config.DatabaseConfig{
		URI:                            testutil.GetSharedContainerURI(),
		DatabaseName:                   testutil.SanitizeDBName(t.Name()),
		Enabled:                        true,
		CircuitBreakerFailureThreshold: 5,
		CircuitBreakerSuccessThreshold: 2,
		CircuitBreakerTimeout:          30 * time.Second,
	}

	storage, err := InitializeDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close(ctx) })

	assert.Len(t, storage.CircuitBreakers, 4)
	require.NotNil(t, storage.HealthCheck)
	assert.NoError(t, storage.HealthCheck(ctx))

	require.NoError(t, storage.Kits.Upsert(ctx, &model.Kit{ID: "k", Name: "Kit", StockCount: 4}))
	stock, err := storage.Kits.AdjustStock(ctx, "k", -10)
	require.NoError(t, err)
	assert.Equal(t, int64(-6), stock)
}
