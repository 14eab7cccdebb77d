package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/kit-service/internal/domain/model"
	"github.com/guttosm/kit-service/internal/messaging"
	"github.com/guttosm/kit-service/internal/mocks"
	"github.com/guttosm/kit-service/internal/repository/memory"
	"github.com/guttosm/kit-service/internal/service"
)

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

type lifecycleFixture struct {
	store     *memory.Store
	svc       *service.AssignmentServiceImpl
	publisher *mocks.MockPublisher
}

func newLifecycleFixture(t *testing.T, stock int64) *lifecycleFixture {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Kits().Upsert(context.Background(), &model.Kit{ID: "kit-1", Name: "Circuit Kit", StockCount: stock}))

	publisher := new(mocks.MockPublisher)
	publisher.On("PublishAssignmentEvent", mock.Anything, mock.Anything).Return(nil)

	seq := 0
	var mu sync.Mutex
	svc := service.NewAssignmentService(
		store.Kits(), store.Assignments(), store.OrderHistory(), store,
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithIDGenerator(func() string {
			mu.Lock()
			defer mu.Unlock()
			seq++
			return fmt.Sprintf("a-%d", seq)
		}),
		service.WithPublisher(publisher),
	)
	return &lifecycleFixture{store: store, svc: svc, publisher: publisher}
}

func (f *lifecycleFixture) stock(t *testing.T) int64 {
	t.Helper()
	kit, err := f.store.Kits().FindByID(context.Background(), "kit-1")
	require.NoError(t, err)
	return kit.StockCount
}

func (f *lifecycleFixture) create(t *testing.T, quantity int64) *service.AssignmentResult {
	t.Helper()
	res, err := f.svc.CreateAssignment(context.Background(), service.CreateAssignmentInput{
		KitID: "kit-1", ClientID: "school-1", ClientType: "school", Quantity: quantity,
	})
	require.NoError(t, err)
	return res
}

func (f *lifecycleFixture) advance(t *testing.T, id string, to model.AssignmentStatus) {
	t.Helper()
	current, err := f.svc.GetAssignment(context.Background(), id)
	require.NoError(t, err)
	for current.Status != to {
		next, ok := current.Status.Next()
		require.True(t, ok)
		current, err = f.svc.TransitionStatus(context.Background(), id, next)
		require.NoError(t, err)
	}
}

func TestCreateAssignment_AllowsNegativeStock(t *testing.T) {
	f := newLifecycleFixture(t, 4)

	res := f.create(t, 10)

	assert.Equal(t, int64(-6), res.StockCount)
	assert.True(t, res.StockChanged)
	assert.Equal(t, model.StatusAssigned, res.Assignment.Status)
	assert.Equal(t, "a-1", res.Assignment.ID)
	assert.Equal(t, fixedNow, res.Assignment.CreatedAt)
	assert.Equal(t, int64(-6), f.stock(t))

	f.publisher.AssertCalled(t, "PublishAssignmentEvent", mock.Anything, mock.MatchedBy(func(e *messaging.AssignmentEvent) bool {
		return e.Type == messaging.EventAssignmentCreated && e.StockCount != nil && *e.StockCount == -6
	}))
}

func TestCreateAssignment_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   service.CreateAssignmentInput
		wantErr error
	}{
		{"zero quantity", service.CreateAssignmentInput{KitID: "kit-1", ClientID: "c", Quantity: 0}, model.ErrInvalidQuantity},
		{"negative quantity", service.CreateAssignmentInput{KitID: "kit-1", ClientID: "c", Quantity: -2}, model.ErrInvalidQuantity},
		{"unknown kit", service.CreateAssignmentInput{KitID: "nope", ClientID: "c", Quantity: 1}, model.ErrKitNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLifecycleFixture(t, 4)
			_, err := f.svc.CreateAssignment(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, int64(4), f.stock(t))
			f.publisher.AssertNotCalled(t, "PublishAssignmentEvent", mock.Anything, mock.Anything)
		})
	}

	t.Run("missing client", func(t *testing.T) {
		f := newLifecycleFixture(t, 4)
		_, err := f.svc.CreateAssignment(context.Background(), service.CreateAssignmentInput{KitID: "kit-1", Quantity: 1})
		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "client_id", verr.Field)
	})
}

func TestDeleteAssignment_RestoresBeforeDispatch(t *testing.T) {
	for _, status := range []model.AssignmentStatus{
		model.StatusAssigned, model.StatusInProgress, model.StatusTransferredToDispatch, model.StatusReadyForDispatch,
	} {
		t.Run(string(status), func(t *testing.T) {
			f := newLifecycleFixture(t, 4)
			res := f.create(t, 10)
			f.advance(t, res.Assignment.ID, status)

			deleted, err := f.svc.DeleteAssignment(context.Background(), res.Assignment.ID)
			require.NoError(t, err)
			assert.True(t, deleted.StockChanged)
			assert.Equal(t, int64(4), deleted.StockCount)
			assert.Equal(t, int64(4), f.stock(t))
		})
	}
}

func TestDeleteAssignment_KeepsStockAfterDispatch(t *testing.T) {
	f := newLifecycleFixture(t, 4)
	res := f.create(t, 3)
	f.advance(t, res.Assignment.ID, model.StatusDispatched)

	deleted, err := f.svc.DeleteAssignment(context.Background(), res.Assignment.ID)

	require.NoError(t, err)
	assert.False(t, deleted.StockChanged)
	assert.Equal(t, int64(1), f.stock(t))
	_, err = f.svc.GetAssignment(context.Background(), res.Assignment.ID)
	assert.ErrorIs(t, err, model.ErrAssignmentNotFound)
}

func TestDeleteAssignment_NotFound(t *testing.T) {
	f := newLifecycleFixture(t, 4)

	_, err := f.svc.DeleteAssignment(context.Background(), "missing")

	assert.ErrorIs(t, err, model.ErrAssignmentNotFound)
	assert.Equal(t, int64(4), f.stock(t))
}

func TestStockConservation(t *testing.T) {
	f := newLifecycleFixture(t, 20)
	ctx := context.Background()

	a := f.create(t, 5)
	b := f.create(t, 7)
	c := f.create(t, 11)
	f.advance(t, c.Assignment.ID, model.StatusDispatched)
	_, err := f.svc.DeleteAssignment(ctx, a.Assignment.ID)
	require.NoError(t, err)

	// initial - sum(quantity of assignments that still hold stock)
	assert.Equal(t, int64(20-7-11), f.stock(t))
	_, err = f.svc.DeleteAssignment(ctx, b.Assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20-11), f.stock(t))
}

func TestCreateAssignment_Concurrent(t *testing.T) {
	f := newLifecycleFixture(t, 4)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CreateAssignment(context.Background(), service.CreateAssignmentInput{KitID: "kit-1", ClientID: "c", Quantity: 2})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(4-50), f.stock(t))
	all, err := f.svc.ListAssignments(context.Background(), model.AssignmentFilter{KitID: "kit-1"})
	require.NoError(t, err)
	assert.Len(t, all, 25)
}

func TestTransitionStatus_SurvivesConcurrentFailedCreates(t *testing.T) {
	f := newLifecycleFixture(t, 10)
	res := f.create(t, 3)
	f.advance(t, res.Assignment.ID, model.StatusReadyForDispatch)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CreateAssignment(ctx, service.CreateAssignmentInput{KitID: "no-such-kit", ClientID: "c", Quantity: 1})
			assert.ErrorIs(t, err, model.ErrKitNotFound)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := f.svc.TransitionStatus(ctx, res.Assignment.ID, model.StatusDispatched)
		assert.NoError(t, err)
	}()
	wg.Wait()

	got, err := f.svc.GetAssignment(ctx, res.Assignment.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusDispatched, got.Status)

	deleted, err := f.svc.DeleteAssignment(ctx, res.Assignment.ID)
	require.NoError(t, err)
	assert.False(t, deleted.StockChanged)
	assert.Equal(t, int64(7), f.stock(t))
}

func TestTransitionStatus(t *testing.T) {
	t.Run("forward step leaves stock alone", func(t *testing.T) {
		f := newLifecycleFixture(t, 4)
		res := f.create(t, 2)

		updated, err := f.svc.TransitionStatus(context.Background(), res.Assignment.ID, model.StatusInProgress)

		require.NoError(t, err)
		assert.Equal(t, model.StatusInProgress, updated.Status)
		assert.Nil(t, updated.DispatchedAt)
		assert.Equal(t, int64(2), f.stock(t))
	})

	t.Run("illegal transition is rejected", func(t *testing.T) {
		f := newLifecycleFixture(t, 4)
		res := f.create(t, 2)

		_, err := f.svc.TransitionStatus(context.Background(), res.Assignment.ID, model.StatusDispatched)

		require.ErrorIs(t, err, model.ErrIllegalTransition)
		var terr *model.TransitionError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, model.StatusAssigned, terr.From)
		assert.Equal(t, model.StatusDispatched, terr.To)
		current, err := f.svc.GetAssignment(context.Background(), res.Assignment.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusAssigned, current.Status)
		assert.Equal(t, int64(2), f.stock(t))
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newLifecycleFixture(t, 4)
		res := f.create(t, 2)

		_, err := f.svc.TransitionStatus(context.Background(), res.Assignment.ID, "packed")

		assert.ErrorIs(t, err, model.ErrUnknownStatus)
	})

	t.Run("dispatch stamps dispatched_at", func(t *testing.T) {
		f := newLifecycleFixture(t, 4)
		res := f.create(t, 2)
		f.advance(t, res.Assignment.ID, model.StatusDispatched)

		current, err := f.svc.GetAssignment(context.Background(), res.Assignment.ID)
		require.NoError(t, err)
		require.NotNil(t, current.DispatchedAt)
		assert.Equal(t, fixedNow, *current.DispatchedAt)
	})

	t.Run("delivered archives to order history", func(t *testing.T) {
		f := newLifecycleFixture(t, 4)
		res := f.create(t, 2)
		f.advance(t, res.Assignment.ID, model.StatusDelivered)

		_, err := f.svc.GetAssignment(context.Background(), res.Assignment.ID)
		assert.ErrorIs(t, err, model.ErrAssignmentNotFound)
		record, err := f.store.OrderHistory().FindByID(context.Background(), res.Assignment.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusDelivered, record.Status)
		assert.Equal(t, "Circuit Kit", record.KitName)
		assert.Equal(t, fixedNow, record.DeliveredAt)
		assert.Equal(t, int64(2), f.stock(t))

		f.publisher.AssertCalled(t, "PublishAssignmentEvent", mock.Anything, mock.MatchedBy(func(e *messaging.AssignmentEvent) bool {
			return e.Type == messaging.EventAssignmentDelivered && e.PreviousStatus == model.StatusDispatched
		}))
	})
}

func TestAssignmentService_TransactionFailureLeavesNothing(t *testing.T) {
	kits := new(mocks.MockKitRepositoryInterface)
	assignments := new(mocks.MockAssignmentRepositoryInterface)
	history := new(mocks.MockOrderHistoryRepositoryInterface)
	tx := new(mocks.MockTransactor)
	errDown := errors.New("no reachable servers")
	tx.On("WithinTransaction", mock.Anything).Return(errDown)
	publisher := new(mocks.MockPublisher)

	svc := service.NewAssignmentService(kits, assignments, history, tx, service.WithPublisher(publisher))
	_, err := svc.CreateAssignment(context.Background(), service.CreateAssignmentInput{KitID: "kit-1", ClientID: "c", Quantity: 1})

	assert.ErrorIs(t, err, errDown)
	kits.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishAssignmentEvent", mock.Anything, mock.Anything)
}

func TestAssignmentService_InsertFailureRollsBackStock(t *testing.T) {
	kits := new(mocks.MockKitRepositoryInterface)
	assignments := new(mocks.MockAssignmentRepositoryInterface)
	history := new(mocks.MockOrderHistoryRepositoryInterface)
	tx := new(mocks.MockTransactor)
	tx.On("WithinTransaction", mock.Anything).Return(nil)
	kits.On("AdjustStock", mock.Anything, "kit-1", int64(-3)).Return(int64(1), nil)
	errInsert := errors.New("write conflict")
	assignments.On("Insert", mock.Anything, mock.Anything).Return(errInsert)

	svc := service.NewAssignmentService(kits, assignments, history, tx)
	_, err := svc.CreateAssignment(context.Background(), service.CreateAssignmentInput{KitID: "kit-1", ClientID: "c", Quantity: 3})

	assert.ErrorIs(t, err, errInsert)
	kits.AssertExpectations(t)
}

func TestAssignmentService_PublishFailureIsNotReturned(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Kits().Upsert(context.Background(), &model.Kit{ID: "kit-1", Name: "Kit", StockCount: 1}))
	publisher := new(mocks.MockPublisher)
	publisher.On("PublishAssignmentEvent", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	svc := service.NewAssignmentService(store.Kits(), store.Assignments(), store.OrderHistory(), store, service.WithPublisher(publisher))
	res, err := svc.CreateAssignment(context.Background(), service.CreateAssignmentInput{KitID: "kit-1", ClientID: "c", Quantity: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(0), res.StockCount)
}

func TestAssignmentService_NotConfigured(t *testing.T) {
	svc := service.NewAssignmentService(nil, nil, nil, nil)

	_, err := svc.CreateAssignment(context.Background(), service.CreateAssignmentInput{KitID: "k", ClientID: "c", Quantity: 1})
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)
	_, err = svc.ListAssignments(context.Background(), model.AssignmentFilter{})
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)
}

func TestListAssignments_RejectsUnknownStatus(t *testing.T) {
	f := newLifecycleFixture(t, 4)

	_, err := f.svc.ListAssignments(context.Background(), model.AssignmentFilter{Status: "packed"})

	assert.ErrorIs(t, err, model.ErrUnknownStatus)
}
