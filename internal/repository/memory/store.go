// Package memory provides an in-process implementation of the repository
// interfaces, used when MongoDB is disabled and in service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/guttosm/kit-service/internal/domain/model"
	"github.com/guttosm/kit-service/internal/repository"
)

// Store holds every collection behind one mutex.
// Transactions roll back by restoring a snapshot, so every write outside a
// transaction waits for the open one to finish. Reads never wait and may see
// uncommitted transaction state.
type Store struct {
	mu          sync.RWMutex
	txMu        sync.Mutex
	kits        map[string]model.Kit
	inventory   map[string]model.InventoryItem
	assignments map[string]model.Assignment
	history     map[string]model.OrderHistoryRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		kits:        make(map[string]model.Kit),
		inventory:   make(map[string]model.InventoryItem),
		assignments: make(map[string]model.Assignment),
		history:     make(map[string]model.OrderHistoryRecord),
	}
}

// Kits returns the kit repository view.
func (s *Store) Kits() *KitRepository { return &KitRepository{s: s} }

// Inventory returns the inventory repository view.
func (s *Store) Inventory() *InventoryRepository { return &InventoryRepository{s: s} }

// Assignments returns the assignment repository view.
func (s *Store) Assignments() *AssignmentRepository { return &AssignmentRepository{s: s} }

// OrderHistory returns the order history repository view.
func (s *Store) OrderHistory() *OrderHistoryRepository { return &OrderHistoryRepository{s: s} }

type snapshot struct {
	kits        map[string]model.Kit
	inventory   map[string]model.InventoryItem
	assignments map[string]model.Assignment
	history     map[string]model.OrderHistoryRecord
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		kits:        make(map[string]model.Kit, len(s.kits)),
		inventory:   make(map[string]model.InventoryItem, len(s.inventory)),
		assignments: make(map[string]model.Assignment, len(s.assignments)),
		history:     make(map[string]model.OrderHistoryRecord, len(s.history)),
	}
	for k, v := range s.kits {
		snap.kits[k] = cloneKit(v)
	}
	for k, v := range s.inventory {
		snap.inventory[k] = v
	}
	for k, v := range s.assignments {
		snap.assignments[k] = cloneAssignment(v)
	}
	for k, v := range s.history {
		snap.history[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kits = snap.kits
	s.inventory = snap.inventory
	s.assignments = snap.assignments
	s.history = snap.history
}

type txKey struct{}

func (s *Store) inTransaction(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// exclusive blocks until no transaction is open and returns the release func.
// Writes made with the transaction's own context pass straight through.
func (s *Store) exclusive(ctx context.Context) func() {
	if s.inTransaction(ctx) {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

// WithinTransaction runs fn and restores the previous state if it fails.
// A nested call joins the enclosing transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTransaction(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func cloneKit(k model.Kit) model.Kit {
	k.Components = append([]model.Component(nil), k.Components...)
	k.SpareKits = append([]model.Material(nil), k.SpareKits...)
	k.BulkMaterials = append([]model.Material(nil), k.BulkMaterials...)
	k.Miscellaneous = append([]model.Material(nil), k.Miscellaneous...)
	return k
}

func cloneAssignment(a model.Assignment) model.Assignment {
	if a.DispatchedAt != nil {
		t := *a.DispatchedAt
		a.DispatchedAt = &t
	}
	return a
}

// KitRepository is the in-memory kit collection.
type KitRepository struct {
	s *Store
}

// Upsert stores a kit. An existing kit keeps its stock count and creation time.
func (r *KitRepository) Upsert(ctx context.Context, kit *model.Kit) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := cloneKit(*kit)
	if existing, ok := r.s.kits[kit.ID]; ok {
		stored.StockCount = existing.StockCount
		stored.CreatedAt = existing.CreatedAt
	}
	r.s.kits[kit.ID] = stored
	return nil
}

// FindByID returns a copy of the kit or ErrKitNotFound.
func (r *KitRepository) FindByID(_ context.Context, id string) (*model.Kit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	kit, ok := r.s.kits[id]
	if !ok {
		return nil, model.ErrKitNotFound
	}
	out := cloneKit(kit)
	return &out, nil
}

// List returns kits ordered by name, then id.
func (r *KitRepository) List(_ context.Context) ([]model.Kit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	kits := make([]model.Kit, 0, len(r.s.kits))
	for _, k := range r.s.kits {
		kits = append(kits, cloneKit(k))
	}
	sort.Slice(kits, func(i, j int) bool {
		if kits[i].Name != kits[j].Name {
			return kits[i].Name < kits[j].Name
		}
		return kits[i].ID < kits[j].ID
	})
	return kits, nil
}

// AdjustStock adds delta to the kit stock and returns the new count.
func (r *KitRepository) AdjustStock(ctx context.Context, id string, delta int64) (int64, error) {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kit, ok := r.s.kits[id]
	if !ok {
		return 0, model.ErrKitNotFound
	}
	kit.StockCount += delta
	r.s.kits[id] = kit
	return kit.StockCount, nil
}

// InventoryRepository is the in-memory inventory collection.
type InventoryRepository struct {
	s *Store
}

// Upsert stores an item, keeping the creation time of an existing one.
func (r *InventoryRepository) Upsert(ctx context.Context, item *model.InventoryItem) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *item
	if existing, ok := r.s.inventory[item.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	}
	r.s.inventory[item.ID] = stored
	return nil
}

// FindByID returns the item or ErrInventoryItemNotFound.
func (r *InventoryRepository) FindByID(_ context.Context, id string) (*model.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	item, ok := r.s.inventory[id]
	if !ok {
		return nil, model.ErrInventoryItemNotFound
	}
	return &item, nil
}

// List returns items in creation order, then id.
func (r *InventoryRepository) List(_ context.Context) ([]model.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := make([]model.InventoryItem, 0, len(r.s.inventory))
	for _, item := range r.s.inventory {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return createdBefore(items[i].CreatedAt, items[j].CreatedAt, items[i].ID, items[j].ID)
	})
	return items, nil
}

// AssignmentRepository is the in-memory active assignment collection.
type AssignmentRepository struct {
	s *Store
}

// Insert stores a new assignment; an existing id is ErrDuplicateID.
func (r *AssignmentRepository) Insert(ctx context.Context, a *model.Assignment) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.assignments[a.ID]; ok {
		return repository.ErrDuplicateID
	}
	r.s.assignments[a.ID] = cloneAssignment(*a)
	return nil
}

// FindByID returns a copy of the assignment or ErrAssignmentNotFound.
func (r *AssignmentRepository) FindByID(_ context.Context, id string) (*model.Assignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.assignments[id]
	if !ok {
		return nil, model.ErrAssignmentNotFound
	}
	out := cloneAssignment(a)
	return &out, nil
}

// List returns matching assignments in creation order, then id.
func (r *AssignmentRepository) List(_ context.Context, filter model.AssignmentFilter) ([]model.Assignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Assignment, 0)
	for _, a := range r.s.assignments {
		if filter.Matches(a) {
			out = append(out, cloneAssignment(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return createdBefore(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

// Delete removes the assignment and returns it as it was.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) (*model.Assignment, error) {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.assignments[id]
	if !ok {
		return nil, model.ErrAssignmentNotFound
	}
	delete(r.s.assignments, id)
	return &a, nil
}

// CompareAndSetStatus moves the assignment to `to` only while it is still in `from`.
func (r *AssignmentRepository) CompareAndSetStatus(ctx context.Context, id string, from, to model.AssignmentStatus, patch repository.StatusPatch) (*model.Assignment, error) {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.assignments[id]
	if !ok {
		return nil, model.ErrAssignmentNotFound
	}
	if a.Status != from {
		return nil, model.ErrStatusConflict
	}
	a.Status = to
	a.UpdatedAt = patch.UpdatedAt
	if patch.DispatchedAt != nil {
		t := *patch.DispatchedAt
		a.DispatchedAt = &t
	}
	r.s.assignments[id] = a
	out := cloneAssignment(a)
	return &out, nil
}

// OrderHistoryRepository is the in-memory order history collection.
type OrderHistoryRepository struct {
	s *Store
}

// Archive stores a delivered assignment; an existing id is ErrDuplicateID.
func (r *OrderHistoryRepository) Archive(ctx context.Context, record *model.OrderHistoryRecord) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.history[record.ID]; ok {
		return repository.ErrDuplicateID
	}
	r.s.history[record.ID] = *record
	return nil
}

// FindByID returns the archived record or ErrAssignmentNotFound.
func (r *OrderHistoryRepository) FindByID(_ context.Context, id string) (*model.OrderHistoryRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	record, ok := r.s.history[id]
	if !ok {
		return nil, model.ErrAssignmentNotFound
	}
	return &record, nil
}

func createdBefore(a, b time.Time, idA, idB string) bool {
	if !a.Equal(b) {
		return a.Before(b)
	}
	return idA < idB
}

var (
	_ repository.KitRepositoryInterface          = (*KitRepository)(nil)
	_ repository.InventoryRepositoryInterface    = (*InventoryRepository)(nil)
	_ repository.AssignmentRepositoryInterface   = (*AssignmentRepository)(nil)
	_ repository.OrderHistoryRepositoryInterface = (*OrderHistoryRepository)(nil)
	_ repository.Transactor                      = (*Store)(nil)
)
