package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/household-api/internal/auth"
	"github.com/BuzzLyutic/household-api/internal/config"
	"github.com/BuzzLyutic/household-api/internal/handler"
	"github.com/BuzzLyutic/household-api/internal/repo"
	"github.com/BuzzLyutic/household-api/internal/service"
	"github.com/BuzzLyutic/household-api/internal/worker"
)

func main() {
	// Подключаем логгер
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// .env опционален, в проде переменные приходят из окружения
	godotenv.Load()

	// Загрузка конфигурации
	cfg := config.Load()

	// Подключаем БД
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to Database.") // Fatal потому что дальнейшая работа теряет смысл
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Failed to ping the Database.")
	}
	logger.Info("Successfully connected to the Database!")

	// Сборка слоёв
	taskRepo := repo.NewTaskRepo(pool)
	auditRepo := repo.NewAuditRepo(pool)
	userRepo := repo.NewUserRepo(pool)

	identity := auth.NewIdentity(userRepo)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	checklist := service.NewChecklistService(taskRepo, auditRepo, logger)

	authHandler := handler.NewAuthHandler(identity, tokens, logger)
	checklistHandler := handler.NewChecklistHandler(checklist, logger)

	r := handler.NewRouter(authHandler, checklistHandler, tokens)

	// Чистка журнала включается только если задан срок хранения
	var pruner *worker.Pruner
	if cfg.AuditRetentionDays > 0 {
		retention := time.Duration(cfg.AuditRetentionDays) * 24 * time.Hour
		pruner = worker.NewPruner(pool, logger, retention, cfg.PruneInterval)
		pruner.Start(context.Background())
	}

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started at ", zap.String("port", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error: ", zap.Error(err))
	}
	if pruner != nil {
		pruner.Stop()
	}
	logger.Info("Server stopped succsessfully!")
}
