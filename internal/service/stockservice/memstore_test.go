package stockservice_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"retailstock/internal/domain"
	apperror "retailstock/internal/errors"
)

// memStore é um InventoryStore em memória. Uma unidade de trabalho segura o
// lock do store do Begin ao Commit/Rollback, como um bloqueio de linha.
type memStore struct {
	mu        sync.Mutex
	records   map[string]domain.InventoryRecord
	movements []domain.MovementRecord

	// failMovement, se definido, faz InsertMovement falhar.
	failMovement error
}

func newMemStore(records ...domain.InventoryRecord) *memStore {
	m := &memStore{records: map[string]domain.InventoryRecord{}}
	for i, r := range records {
		if r.ID == "" {
			r.ID = fmt.Sprintf("INV%d", i+1)
		}
		if r.Version == 0 {
			r.Version = 1
		}
		m.records[pairKey(r.StoreID, r.ProductID)] = r
	}
	return m
}

func pairKey(storeID, productID string) string {
	return storeID + "|" + productID
}

func (m *memStore) Begin(ctx context.Context) (domain.UnitOfWork, error) {
	m.mu.Lock()
	staged := make(map[string]domain.InventoryRecord, len(m.records))
	for k, v := range m.records {
		staged[k] = v
	}
	return &memUnitOfWork{store: m, staged: staged}, nil
}

func (m *memStore) FindByStore(ctx context.Context, storeID string) ([]domain.InventoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.InventoryRecord
	for _, r := range m.records {
		if r.StoreID == storeID {
			out = append(out, r)
		}
	}
	sortRecords(out)
	return out, nil
}

func (m *memStore) FindBelowMinimum(ctx context.Context) ([]domain.InventoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.InventoryRecord
	for _, r := range m.records {
		if r.Quantity < r.MinimumStock {
			out = append(out, r)
		}
	}
	sortRecords(out)
	return out, nil
}

// record devolve o registro persistido do par, se existir.
func (m *memStore) record(storeID, productID string) (domain.InventoryRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[pairKey(storeID, productID)]
	return r, ok
}

func (m *memStore) movementLog() []domain.MovementRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.MovementRecord(nil), m.movements...)
}

func (m *memStore) total(productID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := 0
	for _, r := range m.records {
		if r.ProductID == productID {
			sum += r.Quantity
		}
	}
	return sum
}

func sortRecords(records []domain.InventoryRecord) {
	sort.Slice(records, func(i, j int) bool {
		return pairKey(records[i].StoreID, records[i].ProductID) < pairKey(records[j].StoreID, records[j].ProductID)
	})
}

type memUnitOfWork struct {
	store     *memStore
	staged    map[string]domain.InventoryRecord
	movements []domain.MovementRecord
	done      bool
}

func (u *memUnitOfWork) FindByStoreAndProduct(ctx context.Context, storeID, productID string) (*domain.InventoryRecord, error) {
	r, ok := u.staged[pairKey(storeID, productID)]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (u *memUnitOfWork) Insert(ctx context.Context, record domain.InventoryRecord) error {
	key := pairKey(record.StoreID, record.ProductID)
	if _, exists := u.staged[key]; exists {
		return apperror.NewConflictError("duplicate inventory record")
	}
	if record.Quantity < 0 {
		return apperror.NewInternalError("negative quantity", nil)
	}
	record.Version = 1
	u.staged[key] = record
	return nil
}

func (u *memUnitOfWork) Update(ctx context.Context, record domain.InventoryRecord) error {
	key := pairKey(record.StoreID, record.ProductID)
	current, ok := u.staged[key]
	if !ok || current.Version != record.Version {
		return apperror.NewConflictError("stale inventory record")
	}
	if record.Quantity < 0 {
		return apperror.NewInternalError("negative quantity", nil)
	}
	record.Version++
	u.staged[key] = record
	return nil
}

func (u *memUnitOfWork) InsertMovement(ctx context.Context, movement domain.MovementRecord) error {
	if u.store.failMovement != nil {
		return u.store.failMovement
	}
	u.movements = append(u.movements, movement)
	return nil
}

func (u *memUnitOfWork) Commit() error {
	if u.done {
		return fmt.Errorf("unit of work already finished")
	}
	u.store.records = u.staged
	u.store.movements = append(u.store.movements, u.movements...)
	u.done = true
	u.store.mu.Unlock()
	return nil
}

func (u *memUnitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	u.store.mu.Unlock()
	return nil
}
