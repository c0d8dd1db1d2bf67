package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bookhive/library-service/internal/mailer"
	"github.com/bookhive/library-service/internal/notify"
)

type NotifierService struct {
	log    *zap.Logger
	mailer *mailer.Mailer
}

func NewNotifierService(m *mailer.Mailer, log *zap.Logger) *NotifierService {
	return &NotifierService{
		log:    log.Named("notifier"),
		mailer: m,
	}
}

// Deliver renders the event once and fans the mail out to every recipient.
// A failed recipient does not block the others.
func (s *NotifierService) Deliver(ctx context.Context, event notify.Event) error {
	subject, body, err := mailer.Render(event)
	if err != nil {
		return err
	}
	if len(event.Recipients) == 0 {
		s.log.Warn("event without recipients", zap.String("kind", string(event.Kind)))
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, to := range event.Recipients {
		to := to
		g.Go(func() error {
			if err := s.mailer.Send(ctx, to, subject, body); err != nil {
				s.log.Warn("mail delivery failed",
					zap.String("kind", string(event.Kind)),
					zap.String("to", to),
					zap.Error(err))
			}
			return nil
		})
	}
	return g.Wait()
}
