package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"retailstock/internal/api/inventory"
	"retailstock/internal/pkg/cache"
	"retailstock/internal/pkg/logger"
	"retailstock/internal/pkg/middleware"
)

// RateLimit agrupa os parâmetros do limitador de requisições por IP.
type RateLimit struct {
	Client      cache.Client
	MaxRequests int
	Period      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(inventoryHandler *inventory.Handler, limit RateLimit, log logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// --- 1. Rotas de Health Check e Documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 2. Rotas do Módulo de Estoque (v1) ---
	mux.HandleFunc("POST /v1/inventory/update-stock", inventoryHandler.UpdateStockHandler)
	mux.HandleFunc("POST /v1/inventory/transfer", inventoryHandler.TransferHandler)
	mux.HandleFunc("POST /v1/inventory/update-min-stock", inventoryHandler.UpdateMinStockHandler)
	mux.HandleFunc("GET /v1/inventory/alerts", inventoryHandler.LowStockAlertsHandler)
	mux.HandleFunc("GET /v1/stores/{storeId}/inventory", inventoryHandler.StoreInventoryHandler)

	// --- 3. Middlewares Globais ---
	if limit.Client == nil || limit.MaxRequests <= 0 {
		return mux
	}
	return middleware.RateLimiter(limit.Client, limit.MaxRequests, limit.Period, log)(mux)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
