package storerepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"retailstock/internal/domain"
	"retailstock/internal/errors"
	"retailstock/internal/pkg/logger"
)

// Repository implementa a consulta de lojas usada pelo serviço de estoque.
type Repository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewRepository cria e retorna uma nova instância do Repositório de Lojas.
func NewRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *Repository {
	return &Repository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// GetStoreByID busca uma loja pelo ID.
func (r *Repository) GetStoreByID(ctx context.Context, id string) (domain.Store, error) {
	r.logger.Debug("Iniciando GetStoreByID no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, name, COALESCE(address, ''), COALESCE(phone, ''), created_at, updated_at
        FROM stores
        WHERE id = $1`

	var store domain.Store
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&store.ID, &store.Name, &store.Address, &store.Phone, &store.CreatedAt, &store.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		r.logger.Info("Loja não encontrada.", map[string]interface{}{"id": id})
		return domain.Store{}, errors.NewNotFoundError(fmt.Sprintf("Store with ID %s not found", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar loja no DB.", err)
		return domain.Store{}, errors.NewDBError("Falha ao buscar loja", err)
	}

	r.logger.Debug("Loja encontrada.", map[string]interface{}{"id": id, "name": store.Name})
	return store, nil
}
