package notifier

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/bookhive/library-service/config"
	"github.com/bookhive/library-service/internal/handler"
	"github.com/bookhive/library-service/internal/mailer"
	"github.com/bookhive/library-service/internal/service"
	"github.com/bookhive/library-service/pkg/kafka"
	"github.com/bookhive/library-service/pkg/logger"
)

// Run consumes workflow events from the queue and delivers them over SMTP
// until a termination signal arrives.
func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "notifier")

	consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.NotifierConsumerGroup)
	if err != nil {
		log.Fatal("kafka.NewConsumer", zap.Error(err))
	}

	svc := service.NewNotifierService(mailer.New(cfg.SMTP, log), log)

	ctx, cancel := context.WithCancel(context.Background())
	go kafka.Consume(ctx, consumer, handler.NewConsumer(svc.Deliver, log), kafka.NotificationsTopic)
	log.Info("notifier start", zap.Strings("brokers", cfg.Kafka.Addrs))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))
	cancel()

	if err := consumer.Close(); err != nil {
		log.Error("consumer.Close", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
}
