package inventoryrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"retailstock/internal/domain"
	"retailstock/internal/errors"
	"retailstock/internal/pkg/cache"
	"retailstock/internal/pkg/logger"
)

// Chaves de cache das consultas de leitura. São invalidadas a cada commit.
const (
	lowStockCacheKey    = "inventory:low-stock"
	storeCacheKeyPrefix = "inventory:store:"
)

func storeCacheKey(storeID string) string {
	return storeCacheKeyPrefix + storeID
}

// Repository implementa domain.InventoryStore sobre PostgreSQL, com
// cache-aside (Redis) nas consultas de leitura.
type Repository struct {
	DB        *sql.DB
	Cache     cache.Client // opcional; nil desliga o cache
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewRepository cria e retorna uma nova instância do Repositório de Estoque.
func NewRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *Repository {
	return &Repository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Begin abre uma transação com o prazo DBTimeout. O prazo vale para toda a
// unidade de trabalho e é liberado no Commit ou Rollback.
func (r *Repository) Begin(ctx context.Context) (domain.UnitOfWork, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		cancel()
		r.logger.Error("Falha ao iniciar transação de estoque.", err)
		return nil, errors.NewDBError("Falha ao iniciar transação", err)
	}

	return &unitOfWork{
		tx:      tx,
		cancel:  cancel,
		repo:    r,
		touched: map[string]struct{}{},
	}, nil
}

const selectInventoryWithName = `
        SELECT i.id, i.product_id, i.store_id, i.quantity, i.min_stock, i.version,
               i.created_at, i.updated_at, COALESCE(p.name, '')
        FROM inventories i
        LEFT JOIN products p ON p.id = i.product_id`

// FindByStore busca todos os registros de estoque de uma loja (cache-aside).
func (r *Repository) FindByStore(ctx context.Context, storeID string) ([]domain.InventoryRecord, error) {
	r.logger.Debug("Buscando estoque da loja no repositório.", map[string]interface{}{"store_id": storeID})

	query := selectInventoryWithName + `
        WHERE i.store_id = $1
        ORDER BY i.product_id`

	return r.cachedQuery(ctx, storeCacheKey(storeID), query, storeID)
}

// FindBelowMinimum busca os registros com quantidade estritamente abaixo do mínimo (cache-aside).
func (r *Repository) FindBelowMinimum(ctx context.Context) ([]domain.InventoryRecord, error) {
	r.logger.Debug("Buscando itens com estoque baixo no repositório.", nil)

	query := selectInventoryWithName + `
        WHERE i.quantity < i.min_stock
        ORDER BY i.store_id, i.product_id`

	return r.cachedQuery(ctx, lowStockCacheKey, query)
}

// cachedRecord é a forma serializada no cache; InventoryRecord esconde campos no JSON da API.
type cachedRecord struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	StoreID      string    `json:"storeId"`
	Quantity     int       `json:"quantity"`
	MinimumStock int       `json:"minimumStock"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (r *Repository) cachedQuery(ctx context.Context, key, query string, args ...interface{}) ([]domain.InventoryRecord, error) {
	// --- Cache-Aside (READ) ---
	if r.Cache != nil {
		cachedData, err := r.Cache.Get(ctx, key)
		if err == nil {
			var cached []cachedRecord
			if json.Unmarshal([]byte(cachedData), &cached) == nil {
				r.logger.Debug("Cache HIT.", map[string]interface{}{"key": key, "total": len(cached)})
				return fromCache(cached), nil
			}
			r.logger.Warn("Falha ao desserializar estoque do cache.", map[string]interface{}{"key": key})
		} else if err != cache.ErrCacheMiss {
			r.logger.Warn("Falha ao ler do cache, seguindo para o DB.", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao executar consulta de estoque.", err)
		return nil, errors.NewDBError("Falha ao buscar estoque", err)
	}
	defer rows.Close()

	records := []domain.InventoryRecord{}
	for rows.Next() {
		var rec domain.InventoryRecord
		if err := rows.Scan(
			&rec.ID, &rec.ProductID, &rec.StoreID, &rec.Quantity, &rec.MinimumStock, &rec.Version,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.ProductName,
		); err != nil {
			r.logger.Error("Falha ao mapear registro de estoque.", err)
			return nil, errors.NewDBError("Falha ao mapear estoque do DB", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Erro após iteração das linhas de estoque.", err)
		return nil, errors.NewDBError("Erro após iteração de estoque", err)
	}

	// --- Cache-Aside (WRITE) ---
	if r.Cache != nil {
		if data, marshalErr := json.Marshal(toCache(records)); marshalErr == nil {
			if setErr := r.Cache.Set(ctx, key, data, r.CacheTTL); setErr != nil {
				r.logger.Warn("Falha ao gravar estoque no cache.", map[string]interface{}{"key": key, "error": setErr.Error()})
			}
		}
	}

	r.logger.Debug("Consulta de estoque concluída.", map[string]interface{}{"key": key, "total": len(records)})
	return records, nil
}

// invalidate remove do cache as listas afetadas por uma unidade de trabalho commitada.
func (r *Repository) invalidate(storeIDs map[string]struct{}) {
	if r.Cache == nil || len(storeIDs) == 0 {
		return
	}
	keys := []string{lowStockCacheKey}
	for id := range storeIDs {
		keys = append(keys, storeCacheKey(id))
	}

	// O contexto da transação já foi encerrado neste ponto.
	ctx, cancel := context.WithTimeout(context.Background(), r.DBTimeout)
	defer cancel()
	if err := r.Cache.Delete(ctx, keys...); err != nil {
		r.logger.Warn("Falha ao invalidar cache de estoque.", map[string]interface{}{"keys": keys, "error": err.Error()})
	}
}

func toCache(records []domain.InventoryRecord) []cachedRecord {
	out := make([]cachedRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, cachedRecord{
			ID: rec.ID, ProductID: rec.ProductID, ProductName: rec.ProductName, StoreID: rec.StoreID,
			Quantity: rec.Quantity, MinimumStock: rec.MinimumStock, Version: rec.Version,
			CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt,
		})
	}
	return out
}

func fromCache(cached []cachedRecord) []domain.InventoryRecord {
	out := make([]domain.InventoryRecord, 0, len(cached))
	for _, c := range cached {
		out = append(out, domain.InventoryRecord{
			ID: c.ID, ProductID: c.ProductID, ProductName: c.ProductName, StoreID: c.StoreID,
			Quantity: c.Quantity, MinimumStock: c.MinimumStock, Version: c.Version,
			CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
		})
	}
	return out
}
