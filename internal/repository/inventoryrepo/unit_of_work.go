package inventoryrepo

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"time"

	"retailstock/internal/domain"
	"retailstock/internal/errors"
)

// unitOfWork é uma transação aberta por Repository.Begin. A transação herda o
// prazo de DBTimeout: vencido o prazo, o driver a desfaz.
// Registra as lojas tocadas para invalidar o cache depois do commit.
type unitOfWork struct {
	tx      *sql.Tx
	cancel  context.CancelFunc
	repo    *Repository
	touched map[string]struct{}
}

// FindByStoreAndProduct busca o registro com FOR UPDATE; a linha fica
// bloqueada até o fim da transação. Devolve nil quando o par não existe.
func (u *unitOfWork) FindByStoreAndProduct(ctx context.Context, storeID, productID string) (*domain.InventoryRecord, error) {
	u.repo.logger.Debug("Buscando estoque para atualização.", map[string]interface{}{"store_id": storeID, "product_id": productID})

	query := `
        SELECT id, product_id, store_id, quantity, min_stock, version, created_at, updated_at
        FROM inventories
        WHERE store_id = $1 AND product_id = $2 FOR UPDATE`

	var rec domain.InventoryRecord
	err := u.tx.QueryRowContext(ctx, query, storeID, productID).Scan(
		&rec.ID, &rec.ProductID, &rec.StoreID, &rec.Quantity, &rec.MinimumStock,
		&rec.Version, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		u.repo.logger.Error("Falha ao selecionar estoque para atualização.", err)
		return nil, errors.NewDBError("Falha ao buscar estoque para atualização", err)
	}
	return &rec, nil
}

// Insert cria o registro do par produto/loja com versão 1.
func (u *unitOfWork) Insert(ctx context.Context, record domain.InventoryRecord) error {
	query := `
        INSERT INTO inventories (id, product_id, store_id, quantity, min_stock, version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, 1, $6, $6)`

	now := time.Now().UTC()
	_, err := u.tx.ExecContext(ctx, query,
		record.ID, record.ProductID, record.StoreID, record.Quantity, record.MinimumStock, now,
	)
	if err != nil {
		u.repo.logger.Error("Falha ao inserir registro de estoque.", err)
		return errors.NewDBError("Falha ao inserir estoque", err)
	}

	u.touched[record.StoreID] = struct{}{}
	return nil
}

// Update grava quantidade e mínimo com controle de concorrência otimista (OCC).
// record.Version deve ser a versão lida; zero linhas afetadas vira ConflictError.
func (u *unitOfWork) Update(ctx context.Context, record domain.InventoryRecord) error {
	query := `
        UPDATE inventories
        SET quantity = $1, min_stock = $2, version = version + 1, updated_at = $3
        WHERE id = $4 AND version = $5`

	result, err := u.tx.ExecContext(ctx, query,
		record.Quantity, record.MinimumStock, time.Now().UTC(), record.ID, record.Version,
	)
	if err != nil {
		u.repo.logger.Error("Falha ao atualizar estoque.", err)
		return errors.NewDBError("Falha ao atualizar estoque", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		u.repo.logger.Error("Falha ao verificar linhas afetadas após atualização de estoque.", err)
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		u.repo.logger.Warn("Falha no controle de concorrência otimista (OCC). Versão do registro desatualizada.", map[string]interface{}{
			"id":               record.ID,
			"expected_version": record.Version,
		})
		return errors.NewConflictError(fmt.Sprintf("inventory record %s was modified by another operation", record.ID))
	}

	u.touched[record.StoreID] = struct{}{}
	return nil
}

// InsertMovement acrescenta uma entrada ao log imutável de movimentos.
func (u *unitOfWork) InsertMovement(ctx context.Context, movement domain.MovementRecord) error {
	query := `
        INSERT INTO movements (id, product_id, quantity, type, source_store_id, target_store_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := u.tx.ExecContext(ctx, query,
		movement.ID, movement.ProductID, movement.Quantity, string(movement.Type),
		movement.SourceStoreID, movement.TargetStoreID, movement.Timestamp,
	)
	if err != nil {
		u.repo.logger.Error("Falha ao inserir movimento de estoque.", err)
		return errors.NewDBError("Falha ao inserir movimento", err)
	}
	return nil
}

// Commit confirma a transação e invalida o cache das lojas tocadas.
func (u *unitOfWork) Commit() error {
	defer u.cancel()

	if err := u.tx.Commit(); err != nil {
		u.repo.logger.Error("Falha ao commitar transação de estoque.", err)
		return errors.NewDBError("Falha ao commitar transação", err)
	}

	u.repo.invalidate(u.touched)
	return nil
}

// Rollback desfaz a transação. Chamar depois do Commit não é erro.
func (u *unitOfWork) Rollback() error {
	defer u.cancel()

	if err := u.tx.Rollback(); err != nil && !stdErrors.Is(err, sql.ErrTxDone) {
		u.repo.logger.Error("Falha ao desfazer transação de estoque.", err)
		return errors.NewDBError("Falha ao desfazer transação", err)
	}
	return nil
}
