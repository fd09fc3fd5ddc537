package stockservice

import (
	"context"
	"errors"
	"time"

	"retailstock/internal/domain"
	apperror "retailstock/internal/errors"
	"retailstock/internal/pkg/logger"
	"retailstock/internal/validation"
)

// Prefixos das mensagens de falha devolvidas ao cliente.
const (
	msgUpdateStockFailed    = "Error updating product stock: "
	msgUpdateMinStockFailed = "Error updating product min stock: "
	msgLowStockFailed       = "Error getting low stock items: "
	msgStoreInventoryFailed = "Error getting store inventory: "
)

// StoreRepository define o contrato de consulta de lojas esperado pelo serviço.
type StoreRepository interface {
	GetStoreByID(ctx context.Context, id string) (domain.Store, error)
}

// Service é o motor de movimentação de estoque. Não guarda estado entre chamadas:
// cada mutação abre e encerra a própria unidade de trabalho.
type Service struct {
	store  domain.InventoryStore
	stores StoreRepository
	logger logger.Logger
	now    func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Estoque.
func NewService(store domain.InventoryStore, stores StoreRepository, logger logger.Logger) *Service {
	return &Service{
		store:  store,
		stores: stores,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// AdjustStock aplica uma entrada (IN) ou saída (OUT) no estoque de um produto em uma loja.
func (s *Service) AdjustStock(ctx context.Context, req domain.StockAdjustmentRequest) domain.Result[bool] {
	fields := map[string]interface{}{
		"product_id":    req.ProductID,
		"store_id":      req.StoreID,
		"quantity":      req.Quantity,
		"movement_type": req.MovementType,
	}
	s.logger.Debug("Iniciando ajuste de estoque no serviço.", fields)

	if errs := validation.ValidateStockAdjustment(req); len(errs) > 0 {
		s.logger.Warn("Ajuste de estoque rejeitado na validação.", withErrors(fields, errs))
		return domain.Invalid[bool](errs)
	}

	err := s.withinUnitOfWork(ctx, func(uow domain.UnitOfWork) error {
		record, err := uow.FindByStoreAndProduct(ctx, req.StoreID, req.ProductID)
		if err != nil {
			return err
		}

		movement := s.newMovement(req.ProductID, req.Quantity, req.MovementType)
		storeID := req.StoreID

		switch req.MovementType {
		case domain.MovementIn:
			movement.TargetStoreID = &storeID
			if record == nil {
				if err := uow.Insert(ctx, s.newRecord(req.ProductID, req.StoreID, req.Quantity, 0)); err != nil {
					return err
				}
			} else {
				record.Quantity += req.Quantity
				if err := uow.Update(ctx, *record); err != nil {
					return err
				}
			}
		case domain.MovementOut:
			movement.SourceStoreID = &storeID
			if record == nil || record.Quantity < req.Quantity {
				return apperror.NewInsufficientInventoryError()
			}
			record.Quantity -= req.Quantity
			if err := uow.Update(ctx, *record); err != nil {
				return err
			}
		default:
			return apperror.NewValidationError("MovementType must be IN or OUT")
		}

		return uow.InsertMovement(ctx, movement)
	})
	if err != nil {
		return s.fail(msgUpdateStockFailed, err, fields)
	}

	s.logger.Info("Estoque ajustado com sucesso.", fields)
	return domain.Ok(true)
}

// TransferStock move unidades de uma loja para outra em uma única transação.
func (s *Service) TransferStock(ctx context.Context, req domain.StockTransferRequest) domain.Result[bool] {
	fields := map[string]interface{}{
		"product_id":      req.ProductID,
		"source_store_id": req.SourceStoreID,
		"target_store_id": req.TargetStoreID,
		"quantity":        req.Quantity,
	}
	s.logger.Debug("Iniciando transferência de estoque no serviço.", fields)

	if errs := validation.ValidateStockTransfer(req); len(errs) > 0 {
		s.logger.Warn("Transferência de estoque rejeitada na validação.", withErrors(fields, errs))
		return domain.Invalid[bool](errs)
	}

	err := s.withinUnitOfWork(ctx, func(uow domain.UnitOfWork) error {
		source, target, err := lockPair(ctx, uow, req.ProductID, req.SourceStoreID, req.TargetStoreID)
		if err != nil {
			return err
		}

		if source == nil || source.Quantity < req.Quantity {
			return apperror.NewInsufficientInventoryError()
		}
		source.Quantity -= req.Quantity
		if err := uow.Update(ctx, *source); err != nil {
			return err
		}

		if target == nil {
			if err := uow.Insert(ctx, s.newRecord(req.ProductID, req.TargetStoreID, req.Quantity, 0)); err != nil {
				return err
			}
		} else {
			target.Quantity += req.Quantity
			if err := uow.Update(ctx, *target); err != nil {
				return err
			}
		}

		movement := s.newMovement(req.ProductID, req.Quantity, domain.MovementTransfer)
		sourceID, targetID := req.SourceStoreID, req.TargetStoreID
		movement.SourceStoreID = &sourceID
		movement.TargetStoreID = &targetID
		return uow.InsertMovement(ctx, movement)
	})
	if err != nil {
		return s.fail(msgUpdateStockFailed, err, fields)
	}

	s.logger.Info("Transferência de estoque concluída com sucesso.", fields)
	return domain.Ok(true)
}

// lockPair busca (e bloqueia) os registros de origem e destino sempre na ordem
// crescente de ID da loja, para que transferências opostas não entrem em deadlock.
func lockPair(ctx context.Context, uow domain.UnitOfWork, productID, sourceID, targetID string) (source, target *domain.InventoryRecord, err error) {
	first, second := sourceID, targetID
	if second < first {
		first, second = second, first
	}

	a, err := uow.FindByStoreAndProduct(ctx, first, productID)
	if err != nil {
		return nil, nil, err
	}
	b, err := uow.FindByStoreAndProduct(ctx, second, productID)
	if err != nil {
		return nil, nil, err
	}

	if first == sourceID {
		return a, b, nil
	}
	return b, a, nil
}

// SetMinimumStock define o estoque mínimo do par produto/loja, criando o registro se preciso.
func (s *Service) SetMinimumStock(ctx context.Context, req domain.MinimumStockRequest) domain.Result[bool] {
	fields := map[string]interface{}{
		"product_id":    req.ProductID,
		"store_id":      req.StoreID,
		"minimum_stock": req.MinimumStock,
	}
	s.logger.Debug("Iniciando atualização do estoque mínimo no serviço.", fields)

	if errs := validation.ValidateMinimumStock(req); len(errs) > 0 {
		s.logger.Warn("Atualização do estoque mínimo rejeitada na validação.", withErrors(fields, errs))
		return domain.Invalid[bool](errs)
	}

	err := s.withinUnitOfWork(ctx, func(uow domain.UnitOfWork) error {
		record, err := uow.FindByStoreAndProduct(ctx, req.StoreID, req.ProductID)
		if err != nil {
			return err
		}
		if record == nil {
			return uow.Insert(ctx, s.newRecord(req.ProductID, req.StoreID, 0, req.MinimumStock))
		}
		record.MinimumStock = req.MinimumStock
		return uow.Update(ctx, *record)
	})
	if err != nil {
		return s.fail(msgUpdateMinStockFailed, err, fields)
	}

	s.logger.Info("Estoque mínimo atualizado com sucesso.", fields)
	return domain.Ok(true)
}

// QueryLowStock lista os registros com quantidade abaixo do estoque mínimo.
func (s *Service) QueryLowStock(ctx context.Context) domain.Result[[]domain.InventoryItem] {
	s.logger.Debug("Iniciando consulta de estoque baixo no serviço.", nil)

	records, err := s.store.FindBelowMinimum(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar itens com estoque baixo.", err)
		return domain.Fail[[]domain.InventoryItem](msgLowStockFailed + apperror.FullMessage(err))
	}

	items := project(records, func(r domain.InventoryRecord) bool { return r.IsLowStock() })
	s.logger.Info("Consulta de estoque baixo concluída.", map[string]interface{}{"total_items": len(items)})
	return domain.Ok(items)
}

// GetStoreInventory lista o estoque de uma loja existente.
func (s *Service) GetStoreInventory(ctx context.Context, storeID string) domain.Result[[]domain.InventoryItem] {
	fields := map[string]interface{}{"store_id": storeID}
	s.logger.Debug("Iniciando consulta do estoque da loja no serviço.", fields)

	if errs := validation.ValidateStoreID(storeID); len(errs) > 0 {
		s.logger.Warn("Consulta do estoque da loja rejeitada na validação.", withErrors(fields, errs))
		return domain.Invalid[[]domain.InventoryItem](errs)
	}

	if _, err := s.stores.GetStoreByID(ctx, storeID); err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			s.logger.Warn("Loja não encontrada.", fields)
			return domain.Fail[[]domain.InventoryItem](notFound.Error())
		}
		s.logger.Error("Falha ao buscar loja.", err)
		return domain.Fail[[]domain.InventoryItem](msgStoreInventoryFailed + apperror.FullMessage(err))
	}

	records, err := s.store.FindByStore(ctx, storeID)
	if err != nil {
		s.logger.Error("Falha ao buscar estoque da loja.", err)
		return domain.Fail[[]domain.InventoryItem](msgStoreInventoryFailed + apperror.FullMessage(err))
	}

	items := project(records, nil)
	s.logger.Info("Consulta do estoque da loja concluída.", map[string]interface{}{"store_id": storeID, "total_items": len(items)})
	return domain.Ok(items)
}
