package inventory

import (
	"context"
	"encoding/json"
	"net/http"

	"retailstock/internal/domain"
	"retailstock/internal/pkg/logger"
)

// InventoryService define o contrato que o Handler espera da camada de Serviço.
type InventoryService interface {
	AdjustStock(ctx context.Context, req domain.StockAdjustmentRequest) domain.Result[bool]
	TransferStock(ctx context.Context, req domain.StockTransferRequest) domain.Result[bool]
	SetMinimumStock(ctx context.Context, req domain.MinimumStockRequest) domain.Result[bool]
	QueryLowStock(ctx context.Context) domain.Result[[]domain.InventoryItem]
	GetStoreInventory(ctx context.Context, storeID string) domain.Result[[]domain.InventoryItem]
}

// Handler agrupa todos os métodos de Handler de estoque.
type Handler struct {
	Service InventoryService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc InventoryService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

const msgInvalidPayload = "Invalid request payload. Check the JSON format."

// respond converte o Result no envelope padrão: Success é 200, Failure é 400.
func respond[T any](h *Handler, w http.ResponseWriter, r *http.Request, result domain.Result[T]) {
	status := http.StatusOK
	if failure, ok := result.(domain.Failure[T]); ok {
		status = http.StatusBadRequest
		h.Logger.Debug("Requisição rejeitada.", map[string]interface{}{"path": r.URL.Path, "error": failure.Message})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(domain.NewResponse(result)); err != nil {
		h.Logger.Error("Falha ao codificar JSON de resposta", err)
	}
}

// decode lê o corpo JSON; em caso de erro já responde 400 e devolve false.
func decode[T any](h *Handler, w http.ResponseWriter, r *http.Request, dst *T) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.Logger.Warn("Payload inválido.", map[string]interface{}{"path": r.URL.Path, "error": err.Error()})
		respond(h, w, r, domain.Fail[bool](msgInvalidPayload))
		return false
	}
	return true
}

// UpdateStockHandler lida com a requisição POST /v1/inventory/update-stock.
// @Summary Registra entrada (IN) ou saída (OUT) de estoque
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body domain.StockAdjustmentRequest true "Movimento de estoque"
// @Success 200 {object} domain.APIResponse
// @Failure 400 {object} domain.APIResponse
// @Router /v1/inventory/update-stock [post]
func (h *Handler) UpdateStockHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.StockAdjustmentRequest
	if !decode(h, w, r, &req) {
		return
	}
	respond(h, w, r, h.Service.AdjustStock(r.Context(), req))
}

// TransferHandler lida com a requisição POST /v1/inventory/transfer.
// @Summary Transfere estoque entre lojas
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body domain.StockTransferRequest true "Transferência"
// @Success 200 {object} domain.APIResponse
// @Failure 400 {object} domain.APIResponse
// @Router /v1/inventory/transfer [post]
func (h *Handler) TransferHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.StockTransferRequest
	if !decode(h, w, r, &req) {
		return
	}
	respond(h, w, r, h.Service.TransferStock(r.Context(), req))
}

// UpdateMinStockHandler lida com a requisição POST /v1/inventory/update-min-stock.
// @Summary Define o estoque mínimo de um produto em uma loja
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body domain.MinimumStockRequest true "Estoque mínimo"
// @Success 200 {object} domain.APIResponse
// @Failure 400 {object} domain.APIResponse
// @Router /v1/inventory/update-min-stock [post]
func (h *Handler) UpdateMinStockHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.MinimumStockRequest
	if !decode(h, w, r, &req) {
		return
	}
	respond(h, w, r, h.Service.SetMinimumStock(r.Context(), req))
}

// LowStockAlertsHandler lida com a requisição GET /v1/inventory/alerts.
// @Summary Lista os itens abaixo do estoque mínimo
// @Tags inventory
// @Produce json
// @Success 200 {object} domain.APIResponse{data=[]domain.InventoryItem}
// @Failure 400 {object} domain.APIResponse
// @Router /v1/inventory/alerts [get]
func (h *Handler) LowStockAlertsHandler(w http.ResponseWriter, r *http.Request) {
	respond(h, w, r, h.Service.QueryLowStock(r.Context()))
}

// StoreInventoryHandler lida com a requisição GET /v1/stores/{storeId}/inventory.
// @Summary Lista o estoque de uma loja
// @Tags stores
// @Produce json
// @Param storeId path string true "ID da loja"
// @Success 200 {object} domain.APIResponse{data=[]domain.InventoryItem}
// @Failure 400 {object} domain.APIResponse
// @Router /v1/stores/{storeId}/inventory [get]
func (h *Handler) StoreInventoryHandler(w http.ResponseWriter, r *http.Request) {
	respond(h, w, r, h.Service.GetStoreInventory(r.Context(), r.PathValue("storeId")))
}
