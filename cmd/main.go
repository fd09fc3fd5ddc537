package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"retailstock/config"
	_ "retailstock/docs" // Registra a especificação Swagger
	"retailstock/internal/pkg/cache"
	"retailstock/internal/pkg/database"
	"retailstock/internal/pkg/logger"

	// Camadas de Estoque (Handler -> Service -> Repository)
	"retailstock/internal/api/inventory"
	"retailstock/internal/api/router"
	"retailstock/internal/repository/inventoryrepo"
	"retailstock/internal/repository/storerepo"
	"retailstock/internal/service/stockservice"
)

func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	// Sem .env seguimos com as variáveis do ambiente do sistema (ex: Docker).
	if err := godotenv.Load(); err != nil {
		stdlog.Println("Aviso: arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Inicialização
	cfg := config.LoadConfig()
	log := logger.New(cfg.LogLevel, cfg.Environment)
	defer logger.Sync(log)
	log.Info("Inicializando serviço RetailStock.", map[string]interface{}{"env": cfg.Environment})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis). Indisponível não impede a subida: as consultas vão direto ao banco.
	cacheClient, err := cache.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		log.Warn("Redis indisponível no startup; cache e rate limit degradados.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
	} else {
		log.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
	}
	defer cacheClient.Close()

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler
	inventoryRepo := inventoryrepo.NewRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTimeout, log)
	storeRepo := storerepo.NewRepository(db, cfg.DBTimeout, log)
	log.Debug("Repositórios inicializados.", nil)

	stockSvc := stockservice.NewService(inventoryRepo, storeRepo, log)
	log.Debug("Serviço de Estoque inicializado.", nil)

	inventoryHandler := inventory.NewHandler(stockSvc, log)
	log.Debug("Handler de Estoque inicializado.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(inventoryHandler, router.RateLimit{
		Client:      cacheClient,
		MaxRequests: cfg.RateLimitMaxRequests,
		Period:      cfg.RateLimitPeriod,
	}, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor RetailStock ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
