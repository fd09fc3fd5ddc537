package stockservice_test

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailstock/internal/domain"
	"retailstock/internal/pkg/logger"
	"retailstock/internal/service/stockservice"
)

func newEngine(store *memStore) *stockservice.Service {
	return stockservice.NewService(store, new(MockStoreRepository), logger.NewNop())
}

func adjust(productID, storeID string, quantity int, movementType domain.MovementType) domain.StockAdjustmentRequest {
	return domain.StockAdjustmentRequest{ProductID: productID, StoreID: storeID, Quantity: quantity, MovementType: movementType}
}

// Cenário A: entrada em loja vazia cria o registro e um movimento IN.
func TestScenario_InOnEmptyStore(t *testing.T) {
	store := newMemStore()
	svc := newEngine(store)

	result := svc.AdjustStock(context.Background(), adjust("P", "S", 10, domain.MovementIn))

	assert.Equal(t, domain.Ok(true), result)
	rec, ok := store.record("S", "P")
	require.True(t, ok)
	assert.Equal(t, 10, rec.Quantity)
	assert.Equal(t, 0, rec.MinimumStock)
	assert.NotEmpty(t, rec.ID)

	movements := store.movementLog()
	require.Len(t, movements, 1)
	assert.Equal(t, domain.MovementIn, movements[0].Type)
	assert.Equal(t, 10, movements[0].Quantity)
	assert.Nil(t, movements[0].SourceStoreID)
	require.NotNil(t, movements[0].TargetStoreID)
	assert.Equal(t, "S", *movements[0].TargetStoreID)
}

// Cenário B: saída maior que o saldo falha sem alterar nada.
func TestScenario_OutBeyondStock(t *testing.T) {
	store := newMemStore(domain.InventoryRecord{ProductID: "P", StoreID: "S", Quantity: 5})
	svc := newEngine(store)

	result := svc.AdjustStock(context.Background(), adjust("P", "S", 10, domain.MovementOut))

	assert.Equal(t, domain.Fail[bool]("Error updating product stock: insufficient inventory"), result)
	rec, _ := store.record("S", "P")
	assert.Equal(t, 5, rec.Quantity)
	assert.Empty(t, store.movementLog())
}

// Cenário C: transferência cria o registro de destino.
func TestScenario_TransferCreatesTarget(t *testing.T) {
	store := newMemStore(domain.InventoryRecord{ProductID: "P", StoreID: "S1", Quantity: 10})
	svc := newEngine(store)

	result := svc.TransferStock(context.Background(), domain.StockTransferRequest{ProductID: "P", SourceStoreID: "S1", TargetStoreID: "S2", Quantity: 5})

	assert.Equal(t, domain.Ok(true), result)
	source, _ := store.record("S1", "P")
	target, ok := store.record("S2", "P")
	require.True(t, ok)
	assert.Equal(t, 5, source.Quantity)
	assert.Equal(t, 5, target.Quantity)
	assert.Equal(t, 0, target.MinimumStock)

	movements := store.movementLog()
	require.Len(t, movements, 1)
	assert.Equal(t, domain.MovementTransfer, movements[0].Type)
	assert.Equal(t, 5, movements[0].Quantity)
	assert.Equal(t, "S1", *movements[0].SourceStoreID)
	assert.Equal(t, "S2", *movements[0].TargetStoreID)
}

// Cenário D: transferência para a própria loja é rejeitada na validação.
func TestScenario_TransferToSameStore(t *testing.T) {
	store := newMemStore(domain.InventoryRecord{ProductID: "P", StoreID: "S1", Quantity: 10})
	svc := newEngine(store)

	result := svc.TransferStock(context.Background(), domain.StockTransferRequest{ProductID: "P", SourceStoreID: "S1", TargetStoreID: "S1", Quantity: 5})

	failure, ok := result.(domain.Failure[bool])
	require.True(t, ok)
	assert.Equal(t, "SourceStoreId and TargetStoreId must be different", failure.Message)
	rec, _ := store.record("S1", "P")
	assert.Equal(t, 10, rec.Quantity)
	assert.Equal(t, 1, rec.Version)
	assert.Empty(t, store.movementLog())
}

// Cenário E: mínimo em par inexistente cria registro com quantidade zero.
func TestScenario_MinimumStockOnMissingRecord(t *testing.T) {
	store := newMemStore()
	svc := newEngine(store)

	result := svc.SetMinimumStock(context.Background(), domain.MinimumStockRequest{ProductID: "P", StoreID: "S", MinimumStock: 7})

	assert.Equal(t, domain.Ok(true), result)
	rec, ok := store.record("S", "P")
	require.True(t, ok)
	assert.Equal(t, 0, rec.Quantity)
	assert.Equal(t, 7, rec.MinimumStock)
	assert.Empty(t, store.movementLog())
}

// Cenário F: só entra no alerta quem está estritamente abaixo do mínimo.
func TestScenario_LowStockAlerts(t *testing.T) {
	store := newMemStore(
		domain.InventoryRecord{ProductID: "P1", StoreID: "S", Quantity: 3, MinimumStock: 5},
		domain.InventoryRecord{ProductID: "P2", StoreID: "S", Quantity: 8, MinimumStock: 5},
		domain.InventoryRecord{ProductID: "P3", StoreID: "S", Quantity: 5, MinimumStock: 5},
	)
	svc := newEngine(store)

	result := svc.QueryLowStock(context.Background())

	success, ok := result.(domain.Success[[]domain.InventoryItem])
	require.True(t, ok)
	require.Len(t, success.Data, 1)
	assert.Equal(t, "P1", success.Data[0].ProductID)
	assert.Equal(t, domain.UnknownProductName, success.Data[0].ProductName)
}

func TestAdjustStock_OutBoundary(t *testing.T) {
	store := newMemStore(domain.InventoryRecord{ProductID: "P", StoreID: "S", Quantity: 4})
	svc := newEngine(store)
	ctx := context.Background()

	assert.Equal(t, domain.Ok(true), svc.AdjustStock(ctx, adjust("P", "S", 4, domain.MovementOut)))
	rec, _ := store.record("S", "P")
	assert.Equal(t, 0, rec.Quantity)

	store = newMemStore(domain.InventoryRecord{ProductID: "P", StoreID: "S", Quantity: 4})
	svc = newEngine(store)
	_, isFailure := svc.AdjustStock(ctx, adjust("P", "S", 5, domain.MovementOut)).(domain.Failure[bool])
	assert.True(t, isFailure)
}

func TestAdjustStock_InIsNotIdempotent(t *testing.T) {
	store := newMemStore()
	svc := newEngine(store)
	ctx := context.Background()

	svc.AdjustStock(ctx, adjust("P", "S", 3, domain.MovementIn))
	svc.AdjustStock(ctx, adjust("P", "S", 3, domain.MovementIn))

	rec, _ := store.record("S", "P")
	assert.Equal(t, 6, rec.Quantity)
	assert.Len(t, store.movementLog(), 2)
}

func TestTransferStock_FailureAfterDecrementKeepsSource(t *testing.T) {
	store := newMemStore(domain.InventoryRecord{ProductID: "P", StoreID: "S1", Quantity: 10})
	store.failMovement = errors.New("movements table is read-only")
	svc := newEngine(store)

	result := svc.TransferStock(context.Background(), domain.StockTransferRequest{ProductID: "P", SourceStoreID: "S1", TargetStoreID: "S2", Quantity: 4})

	assert.Equal(t, domain.Fail[bool]("Error updating product stock: movements table is read-only"), result)
	source, _ := store.record("S1", "P")
	assert.Equal(t, 10, source.Quantity)
	_, targetExists := store.record("S2", "P")
	assert.False(t, targetExists)
}

func TestTransferStock_ConservesTotal(t *testing.T) {
	stores := []string{"S1", "S2", "S3"}
	store := newMemStore(
		domain.InventoryRecord{ProductID: "P", StoreID: "S1", Quantity: 40},
		domain.InventoryRecord{ProductID: "P", StoreID: "S2", Quantity: 25},
	)
	svc := newEngine(store)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		from := stores[rng.Intn(len(stores))]
		to := stores[rng.Intn(len(stores))]
		svc.TransferStock(ctx, domain.StockTransferRequest{ProductID: "P", SourceStoreID: from, TargetStoreID: to, Quantity: 1 + rng.Intn(10)})
		require.Equal(t, 65, store.total("P"))
	}

	svc.AdjustStock(ctx, adjust("P", "S3", 7, domain.MovementIn))
	assert.Equal(t, 72, store.total("P"))
	svc.AdjustStock(ctx, adjust("P", "S1", 0, domain.MovementOut))
	assert.Equal(t, 72, store.total("P"))
}

func TestAdjustStock_ConcurrentOutsNeverGoNegative(t *testing.T) {
	store := newMemStore(domain.InventoryRecord{ProductID: "P", StoreID: "S", Quantity: 20})
	svc := newEngine(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := svc.AdjustStock(ctx, adjust("P", "S", 3, domain.MovementOut)).(domain.Success[bool]); ok {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	rec, _ := store.record("S", "P")
	assert.Equal(t, 6, succeeded)
	assert.Equal(t, 2, rec.Quantity)
	assert.Len(t, store.movementLog(), 6)
}

func TestTransferStock_OppositeDirectionsConcurrently(t *testing.T) {
	store := newMemStore(
		domain.InventoryRecord{ProductID: "P", StoreID: "S1", Quantity: 50},
		domain.InventoryRecord{ProductID: "P", StoreID: "S2", Quantity: 50},
	)
	svc := newEngine(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			svc.TransferStock(ctx, domain.StockTransferRequest{ProductID: "P", SourceStoreID: "S1", TargetStoreID: "S2", Quantity: 2})
		}()
		go func() {
			defer wg.Done()
			svc.TransferStock(ctx, domain.StockTransferRequest{ProductID: "P", SourceStoreID: "S2", TargetStoreID: "S1", Quantity: 3})
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, store.total("P"))
	s1, _ := store.record("S1", "P")
	s2, _ := store.record("S2", "P")
	assert.GreaterOrEqual(t, s1.Quantity, 0)
	assert.GreaterOrEqual(t, s2.Quantity, 0)
}
