package main

import (
	"flag"
	stdlog "log"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"retailstock/config"
	"retailstock/internal/pkg/database"
	"retailstock/internal/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdlog.Println("Aviso: arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.New(cfg.LogLevel, cfg.Environment)
	defer logger.Sync(log)

	var migrationsDir string
	flag.StringVar(&migrationsDir, "dir", "./sql", "diretório com os arquivos de migração")
	flag.Parse()

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("goose: falha ao conectar ao DB.", err)
	}
	defer db.Close()

	goose.SetLogger(goose.NopLogger())

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"} // padrão: aplicar todas as migrações pendentes
	}

	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		log.Fatal("goose: falha ao executar comando.", err)
	}

	log.Info("goose: comando concluído.", map[string]interface{}{"command": command, "dir": migrationsDir})
}
