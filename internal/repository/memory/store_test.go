package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/kit-service/internal/domain/model"
	"github.com/guttosm/kit-service/internal/repository"
)

func TestKitRepository_UpsertKeepsStock(t *testing.T) {
	ctx := context.Background()
	kits := NewStore().Kits()
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, kits.Upsert(ctx, &model.Kit{ID: "k1", Name: "Kit", StockCount: 4, CreatedAt: created}))
	require.NoError(t, kits.Upsert(ctx, &model.Kit{ID: "k1", Name: "Kit v2", StockCount: 99, CreatedAt: time.Now()}))

	got, err := kits.FindByID(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "Kit v2", got.Name)
	assert.Equal(t, int64(4), got.StockCount)
	assert.Equal(t, created, got.CreatedAt)
}

func TestKitRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	kits := NewStore().Kits()
	require.NoError(t, kits.Upsert(ctx, &model.Kit{ID: "k1", Name: "Kit", SpareKits: []model.Material{{Name: "Spare"}}}))

	got, err := kits.FindByID(ctx, "k1")
	require.NoError(t, err)
	got.SpareKits[0].Name = "changed"

	again, err := kits.FindByID(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "Spare", again.SpareKits[0].Name)
}

func TestKitRepository_AdjustStock(t *testing.T) {
	ctx := context.Background()
	kits := NewStore().Kits()
	require.NoError(t, kits.Upsert(ctx, &model.Kit{ID: "k1", Name: "Kit", StockCount: 4}))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = kits.AdjustStock(ctx, "k1", -1)
		}()
	}
	wg.Wait()

	got, err := kits.FindByID(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, int64(-6), got.StockCount)

	_, err = kits.AdjustStock(ctx, "missing", 1)
	assert.ErrorIs(t, err, model.ErrKitNotFound)
}

func TestInventoryRepository_ListSnapshotOrder(t *testing.T) {
	ctx := context.Background()
	inventory := NewStore().Inventory()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, inventory.Upsert(ctx, &model.InventoryItem{ID: "b", Name: "resistor", Quantity: decimal.NewFromInt(1), CreatedAt: base.Add(time.Second)}))
	require.NoError(t, inventory.Upsert(ctx, &model.InventoryItem{ID: "c", Name: "Wire", CreatedAt: base}))
	require.NoError(t, inventory.Upsert(ctx, &model.InventoryItem{ID: "a", Name: "Resistor", Quantity: decimal.NewFromInt(12), CreatedAt: base}))

	items, err := inventory.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, []string{items[0].ID, items[1].ID, items[2].ID})

	_, err = inventory.FindByID(ctx, "zz")
	assert.ErrorIs(t, err, model.ErrInventoryItemNotFound)
}

func TestAssignmentRepository_CompareAndSetStatus(t *testing.T) {
	ctx := context.Background()
	assignments := NewStore().Assignments()
	require.NoError(t, assignments.Insert(ctx, &model.Assignment{ID: "a1", KitID: "k1", Quantity: 1, Status: model.StatusAssigned}))
	assert.ErrorIs(t, assignments.Insert(ctx, &model.Assignment{ID: "a1"}), repository.ErrDuplicateID)

	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	updated, err := assignments.CompareAndSetStatus(ctx, "a1", model.StatusAssigned, model.StatusInProgress, repository.StatusPatch{UpdatedAt: now, DispatchedAt: &now})
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, updated.Status)
	assert.Equal(t, now, *updated.DispatchedAt)

	_, err = assignments.CompareAndSetStatus(ctx, "a1", model.StatusAssigned, model.StatusInProgress, repository.StatusPatch{})
	assert.ErrorIs(t, err, model.ErrStatusConflict)

	_, err = assignments.CompareAndSetStatus(ctx, "zz", model.StatusAssigned, model.StatusInProgress, repository.StatusPatch{})
	assert.ErrorIs(t, err, model.ErrAssignmentNotFound)
}

func TestAssignmentRepository_ListOrderAndFilter(t *testing.T) {
	ctx := context.Background()
	assignments := NewStore().Assignments()
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, assignments.Insert(ctx, &model.Assignment{ID: "late", KitID: "k1", Status: model.StatusAssigned, CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, assignments.Insert(ctx, &model.Assignment{ID: "early", KitID: "k2", Status: model.StatusDispatched, CreatedAt: base}))

	all, err := assignments.List(ctx, model.AssignmentFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late"}, []string{all[0].ID, all[1].ID})

	filtered, err := assignments.List(ctx, model.AssignmentFilter{KitID: "k1"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "late", filtered[0].ID)
}

func TestStore_WithinTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	kits := store.Kits()
	assignments := store.Assignments()
	require.NoError(t, kits.Upsert(ctx, &model.Kit{ID: "k1", Name: "Kit", StockCount: 4}))

	errInsert := errors.New("insert failed")
	err := store.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := kits.AdjustStock(ctx, "k1", -10); err != nil {
			return err
		}
		if err := assignments.Insert(ctx, &model.Assignment{ID: "a1", KitID: "k1"}); err != nil {
			return err
		}
		return errInsert
	})
	require.ErrorIs(t, err, errInsert)

	kit, err := kits.FindByID(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), kit.StockCount)
	_, err = assignments.FindByID(ctx, "a1")
	assert.ErrorIs(t, err, model.ErrAssignmentNotFound)
}

func TestStore_FailedTransactionKeepsConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	kits := store.Kits()
	assignments := store.Assignments()
	require.NoError(t, kits.Upsert(ctx, &model.Kit{ID: "k1", Name: "Kit", StockCount: 4}))
	require.NoError(t, assignments.Insert(ctx, &model.Assignment{ID: "a1", KitID: "k1", Quantity: 2, Status: model.StatusReadyForDispatch}))

	inTx := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- store.WithinTransaction(ctx, func(txCtx context.Context) error {
			if _, err := kits.AdjustStock(txCtx, "k1", -3); err != nil {
				return err
			}
			close(inTx)
			<-release
			_, err := kits.AdjustStock(txCtx, "missing", -1)
			return err
		})
	}()
	<-inTx

	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	casDone := make(chan error, 1)
	go func() {
		_, err := assignments.CompareAndSetStatus(ctx, "a1", model.StatusReadyForDispatch, model.StatusDispatched,
			repository.StatusPatch{UpdatedAt: now, DispatchedAt: &now})
		casDone <- err
	}()

	assert.Never(t, func() bool { return len(casDone) > 0 }, 50*time.Millisecond, 5*time.Millisecond,
		"writes outside the transaction wait for it")
	close(release)

	require.ErrorIs(t, <-txDone, model.ErrKitNotFound)
	require.NoError(t, <-casDone)

	a, err := assignments.FindByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDispatched, a.Status)
	assert.False(t, a.Status.RestoresStockOnDelete())

	kit, err := kits.FindByID(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), kit.StockCount, "the failed transaction's own write is rolled back")
}

func TestStore_NestedTransactionJoins(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	kits := store.Kits()
	require.NoError(t, kits.Upsert(ctx, &model.Kit{ID: "k1", Name: "Kit", StockCount: 4}))

	errAbort := errors.New("abort")
	err := store.WithinTransaction(ctx, func(txCtx context.Context) error {
		inner := store.WithinTransaction(txCtx, func(innerCtx context.Context) error {
			_, err := kits.AdjustStock(innerCtx, "k1", -1)
			return err
		})
		require.NoError(t, inner)
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	kit, err := kits.FindByID(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), kit.StockCount)
}

func TestOrderHistoryRepository(t *testing.T) {
	ctx := context.Background()
	history := NewStore().OrderHistory()
	record := &model.OrderHistoryRecord{Assignment: model.Assignment{ID: "a1", Status: model.StatusDelivered}}

	require.NoError(t, history.Archive(ctx, record))
	assert.ErrorIs(t, history.Archive(ctx, record), repository.ErrDuplicateID)

	got, err := history.FindByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDelivered, got.Status)
}
