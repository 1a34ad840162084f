package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/medcouncil/registry/internal/emailqueue/domain"
	"github.com/medcouncil/registry/internal/emailqueue/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingProvider struct {
	sent []string
	err  error
}

func (p *recordingProvider) Send(_ context.Context, to []string, _ string, _ string) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, to[0])
	return nil
}

func setupService(t *testing.T, provider *recordingProvider) (domain.Service, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.QueuedEmail{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:       gdb,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		Provider: provider,
	})
	return svc, gdb
}

func TestDrain_SendsPendingAndMarksSent(t *testing.T) {
	provider := &recordingProvider{}
	svc, gdb := setupService(t, provider)
	ctx := context.Background()

	for _, recipient := range []string{"a@registry.test", "b@registry.test"} {
		_, err := svc.Enqueue(ctx, domain.EnqueueRequest{
			Recipient: recipient,
			Subject:   "Renewal reminder",
			Body:      "<p>Your license expires soon.</p>",
		})
		require.NoError(t, err)
	}

	sent, err := svc.Drain(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 2, sent)
	require.Equal(t, []string{"a@registry.test", "b@registry.test"}, provider.sent)

	var remaining int64
	require.NoError(t, gdb.Model(&domain.QueuedEmail{}).
		Where("status = ?", domain.EmailPending).Count(&remaining).Error)
	require.Zero(t, remaining)
}

func TestDrain_FailureKeepsPendingUntilMaxAttempts(t *testing.T) {
	provider := &recordingProvider{err: errors.New("smtp unreachable")}
	svc, gdb := setupService(t, provider)
	ctx := context.Background()

	_, err := svc.Enqueue(ctx, domain.EnqueueRequest{
		Recipient: "c@registry.test",
		Subject:   "Renewal reminder",
		Body:      "body",
	})
	require.NoError(t, err)

	for i := 0; i < domain.MaxAttempts; i++ {
		_, err := svc.Drain(ctx, 10)
		require.NoError(t, err)
	}

	var email domain.QueuedEmail
	require.NoError(t, gdb.First(&email).Error)
	require.Equal(t, domain.EmailFailed, email.Status)
	require.Equal(t, domain.MaxAttempts, email.Attempts)
	require.NotNil(t, email.LastError)
}

func TestEnqueue_RejectsBadRecipient(t *testing.T) {
	svc, _ := setupService(t, &recordingProvider{})

	_, err := svc.Enqueue(context.Background(), domain.EnqueueRequest{
		Recipient: "not-an-address",
		Subject:   "x",
	})
	require.ErrorIs(t, err, domain.ErrInvalidRecipient)
}
