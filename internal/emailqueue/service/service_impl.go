package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/medcouncil/registry/internal/emailqueue/domain"
	"github.com/medcouncil/registry/internal/providers/email"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Provider email.Provider
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	provider email.Provider
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("emailqueue.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		provider: p.Provider,
	}
}

func (s *Service) Enqueue(ctx context.Context, req domain.EnqueueRequest) (domain.QueuedEmail, error) {
	recipient := strings.TrimSpace(req.Recipient)
	if recipient == "" || !strings.Contains(recipient, "@") {
		return domain.QueuedEmail{}, domain.ErrInvalidRecipient
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return domain.QueuedEmail{}, domain.ErrInvalidSubject
	}

	now := time.Now().UTC()
	queued := domain.QueuedEmail{
		ID:        s.genID.Generate(),
		Recipient: recipient,
		Subject:   subject,
		Body:      req.Body,
		Status:    domain.EmailPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, &queued); err != nil {
		return domain.QueuedEmail{}, err
	}
	return queued, nil
}

func (s *Service) Drain(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 50
	}

	pending, err := s.repo.ListPending(ctx, s.db, batchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range pending {
		item := pending[i]
		item.Attempts++
		item.UpdatedAt = time.Now().UTC()

		if err := s.provider.Send(ctx, []string{item.Recipient}, item.Subject, item.Body); err != nil {
			message := err.Error()
			item.LastError = &message
			if item.Attempts >= domain.MaxAttempts {
				item.Status = domain.EmailFailed
			}
			s.log.Warn("email delivery failed",
				zap.String("uuid", item.UUID),
				zap.Int("attempts", item.Attempts),
				zap.Error(err),
			)
		} else {
			item.Status = domain.EmailSent
			item.LastError = nil
			sent++
		}

		if err := s.repo.Update(ctx, s.db, &item); err != nil {
			return sent, err
		}
	}
	return sent, nil
}
