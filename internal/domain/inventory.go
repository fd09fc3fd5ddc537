package domain

import (
	"context"
	"time"
)

// MovementType identifica a natureza de um movimento de estoque.
type MovementType string

const (
	MovementIn       MovementType = "IN"       // entrada de mercadoria em uma loja
	MovementOut      MovementType = "OUT"      // saída de mercadoria de uma loja
	MovementTransfer MovementType = "TRANSFER" // transferência atômica entre duas lojas
)

// UnknownProductName é o nome exibido quando o produto não pode ser resolvido.
const UnknownProductName = "Unknown"

// InventoryRecord é o estoque de um produto em uma loja.
// Existe no máximo um registro por par (ProductID, StoreID).
type InventoryRecord struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId"`
	StoreID      string    `json:"storeId"`
	Quantity     int       `json:"quantity"`
	MinimumStock int       `json:"minimumStock"`
	Version      int       `json:"-"` // Controle de Concorrência Otimista (OCC)
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`

	// ProductName é preenchido apenas pelas consultas de leitura (JOIN com products).
	ProductName string `json:"-"`
}

// IsLowStock indica se a quantidade está abaixo do mínimo configurado (comparação estrita).
func (r InventoryRecord) IsLowStock() bool {
	return r.Quantity < r.MinimumStock
}

// MovementRecord é a entrada imutável do log de movimentos.
type MovementRecord struct {
	ID            string       `json:"id"`
	ProductID     string       `json:"productId"`
	Quantity      int          `json:"quantity"` // sempre positiva
	Type          MovementType `json:"type"`
	SourceStoreID *string      `json:"sourceStoreId"`
	TargetStoreID *string      `json:"targetStoreId"`
	Timestamp     time.Time    `json:"timestamp"`
}

// InventoryItem é a projeção de leitura devolvida pelas consultas de estoque.
type InventoryItem struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	StoreID      string `json:"storeId"`
	Quantity     int    `json:"quantity"`
	MinimumStock int    `json:"minimumStock"`
}

// NewInventoryItem projeta um registro, aplicando o nome sentinela quando necessário.
func NewInventoryItem(r InventoryRecord) InventoryItem {
	name := r.ProductName
	if name == "" {
		name = UnknownProductName
	}
	return InventoryItem{
		ID:           r.ID,
		ProductID:    r.ProductID,
		ProductName:  name,
		StoreID:      r.StoreID,
		Quantity:     r.Quantity,
		MinimumStock: r.MinimumStock,
	}
}

// --- Payloads de entrada ---

// StockAdjustmentRequest é o payload de uma entrada (IN) ou saída (OUT) de estoque.
type StockAdjustmentRequest struct {
	ProductID    string       `json:"productId" validate:"required,notblank"`
	StoreID      string       `json:"storeId" validate:"required,notblank"`
	Quantity     int          `json:"quantity" validate:"gt=0"`
	MovementType MovementType `json:"movementType" validate:"oneof=IN OUT"`
}

// StockTransferRequest é o payload de uma transferência entre lojas.
type StockTransferRequest struct {
	ProductID     string `json:"productId" validate:"required,notblank"`
	SourceStoreID string `json:"sourceStoreId" validate:"required,notblank"`
	TargetStoreID string `json:"targetStoreId" validate:"required,notblank,nefield=SourceStoreID"`
	Quantity      int    `json:"quantity" validate:"gt=0"`
}

// MinimumStockRequest é o payload de atualização do estoque mínimo.
type MinimumStockRequest struct {
	ProductID    string `json:"productId" validate:"required,notblank"`
	StoreID      string `json:"storeId" validate:"required,notblank"`
	MinimumStock int    `json:"minimumStock" validate:"gt=0"`
}

// --- Contratos de Persistência ---

// InventoryStore é o contrato que a camada de Repositório DEVE implementar.
// É a única fronteira de mutação usada pelo motor de estoque.
type InventoryStore interface {
	// Begin abre uma unidade de trabalho (transação). Quem chama é dono do commit/rollback.
	Begin(ctx context.Context) (UnitOfWork, error)
	FindByStore(ctx context.Context, storeID string) ([]InventoryRecord, error)
	FindBelowMinimum(ctx context.Context) ([]InventoryRecord, error)
}

// UnitOfWork agrupa as leituras e escritas de uma operação em uma única transação.
type UnitOfWork interface {
	// FindByStoreAndProduct devolve nil (sem erro) quando o par ainda não existe.
	// O registro encontrado fica bloqueado até o fim da unidade de trabalho.
	FindByStoreAndProduct(ctx context.Context, storeID, productID string) (*InventoryRecord, error)
	Insert(ctx context.Context, record InventoryRecord) error
	Update(ctx context.Context, record InventoryRecord) error
	InsertMovement(ctx context.Context, movement MovementRecord) error
	Commit() error
	Rollback() error
}
