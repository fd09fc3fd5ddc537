package stockservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"retailstock/internal/domain"
	apperror "retailstock/internal/errors"
)

// withinUnitOfWork executa fn dentro de uma unidade de trabalho. Se fn falhar,
// entrar em pânico ou o commit falhar, a unidade é desfeita.
func (s *Service) withinUnitOfWork(ctx context.Context, fn func(uow domain.UnitOfWork) error) (err error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if r := recover(); r != nil {
			err = apperror.NewInternalError(fmt.Sprintf("unexpected panic: %v", r), nil)
		}
		if committed {
			return
		}
		if rbErr := uow.Rollback(); rbErr != nil {
			s.logger.Error("Falha ao desfazer unidade de trabalho.", rbErr)
		}
	}()

	if err = fn(uow); err != nil {
		return err
	}
	if err = uow.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// fail registra a falha de uma mutação e monta o Result com a cadeia de causas.
func (s *Service) fail(prefix string, err error, fields map[string]interface{}) domain.Result[bool] {
	var businessErr *apperror.BusinessRuleError
	var validationErr *apperror.ValidationError
	if errors.As(err, &businessErr) || errors.As(err, &validationErr) {
		s.logger.Warn("Operação de estoque rejeitada.", withError(fields, err))
	} else {
		s.logger.Error("Falha na operação de estoque.", err)
	}
	return domain.Fail[bool](prefix + apperror.FullMessage(err))
}

func (s *Service) newRecord(productID, storeID string, quantity, minimumStock int) domain.InventoryRecord {
	return domain.InventoryRecord{
		ID:           uuid.NewString(),
		ProductID:    productID,
		StoreID:      storeID,
		Quantity:     quantity,
		MinimumStock: minimumStock,
	}
}

func (s *Service) newMovement(productID string, quantity int, movementType domain.MovementType) domain.MovementRecord {
	return domain.MovementRecord{
		ID:        uuid.NewString(),
		ProductID: productID,
		Quantity:  quantity,
		Type:      movementType,
		Timestamp: s.now(),
	}
}

// project converte registros em itens de leitura; keep nil mantém todos.
func project(records []domain.InventoryRecord, keep func(domain.InventoryRecord) bool) []domain.InventoryItem {
	items := make([]domain.InventoryItem, 0, len(records))
	for _, r := range records {
		if keep != nil && !keep(r) {
			continue
		}
		items = append(items, domain.NewInventoryItem(r))
	}
	return items
}

func withErrors(fields map[string]interface{}, errs []domain.FieldError) map[string]interface{} {
	out := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["validation_errors"] = errs
	return out
}

func withError(fields map[string]interface{}, err error) map[string]interface{} {
	out := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["error"] = err.Error()
	return out
}
