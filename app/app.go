package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bookhive/library-service/config"
	"github.com/bookhive/library-service/internal/handler"
	"github.com/bookhive/library-service/internal/notify"
	"github.com/bookhive/library-service/internal/repository"
	"github.com/bookhive/library-service/internal/server"
	"github.com/bookhive/library-service/internal/service"
	"github.com/bookhive/library-service/migrations"
	"github.com/bookhive/library-service/pkg/kafka"
	"github.com/bookhive/library-service/pkg/keystore"
	"github.com/bookhive/library-service/pkg/logger"
	"github.com/bookhive/library-service/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Fatal("kafka.NewProducer", zap.Error(err))
	}
	dispatcher := notify.NewQueueDispatcher(producer)
	otps := keystore.NewRedisStore(cfg.Redis)
	jwtKey := []byte(cfg.Auth.JWTKey)

	h := handler.New(handler.Services{
		Auth:     service.NewAuthService(repo, otps, dispatcher, jwtKey, log),
		Books:    service.NewBookService(repo, log),
		Loans:    service.NewLoanService(repo, log),
		Requests: service.NewRequestService(repo, repo, repo, dispatcher, log),
		Issues:   service.NewIssueService(repo, repo, dispatcher, log),
		Ratings:  service.NewRatingService(repo, repo, log),
		Comments: service.NewCommentService(repo, log),
	}, jwtKey, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	if err = producer.Close(); err != nil {
		log.Error("producer.Close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
