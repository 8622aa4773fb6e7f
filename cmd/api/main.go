package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/storeintelligence/quoting-api/infrastructure/database/postgres"
	"github.com/storeintelligence/quoting-api/infrastructure/migration"
	"github.com/storeintelligence/quoting-api/infrastructure/repository"
	"github.com/storeintelligence/quoting-api/internal/api"
	"github.com/storeintelligence/quoting-api/internal/config"
	"github.com/storeintelligence/quoting-api/internal/scheduler"
	"github.com/storeintelligence/quoting-api/internal/usecases/authenticating"
	"github.com/storeintelligence/quoting-api/internal/usecases/quoting"
	"github.com/storeintelligence/quoting-api/internal/usecases/rating"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	// Aplica as migrações pendentes antes de aceitar tráfego
	if err := migration.Up(pgConn.DB); err != nil {
		logrus.WithError(err).Fatal("Erro ao executar migrações do banco de dados")
	}

	userRepo := repository.NewUserRepository(pgConn)
	rateRepo := repository.NewRateRepository(pgConn)
	quoteRepo := repository.NewQuoteRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	rateService := rating.NewService(rateRepo)
	quoteService := quoting.NewService(quoteRepo, rateService)

	// Agendador da tabela de câmbio usada apenas na exibição dos documentos
	exchangeRateSyncService := scheduler.NewExchangeRateSyncService(cfg)
	if err := exchangeRateSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de taxas de câmbio")
	} else {
		logrus.Info("Agendador de taxas de câmbio iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		rateService,
		quoteService,
		exchangeRateSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
