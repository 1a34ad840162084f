package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/medcouncil/registry/internal/apikey/domain"
	"github.com/medcouncil/registry/internal/apikey/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.APIKey{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, gdb
}

func TestCreate_ReturnsSecretOnceAndStoresHash(t *testing.T) {
	svc, gdb := setupService(t)

	secret, err := svc.Create(context.Background(), domain.CreateRequest{
		Name:   "reporting",
		Scopes: []string{domain.ScopeRead},
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(secret.APIKey, "rg_live_key_"))

	var stored domain.APIKey
	require.NoError(t, gdb.Where("key_id = ?", secret.KeyID).First(&stored).Error)
	require.Equal(t, domain.HashAPIKey(secret.APIKey), stored.KeyHash)
	require.NotEqual(t, secret.APIKey, stored.KeyHash)
	require.True(t, stored.HasScope(domain.ScopeRead))
	require.False(t, stored.HasScope(domain.ScopeWrite))
}

func TestCreate_UnknownScopeRejected(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Name:   "bad",
		Scopes: []string{"admin:everything"},
	})
	require.ErrorIs(t, err, domain.ErrInvalidScope)
}

func TestRotate_OldKeyGetsGracePeriod(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()

	secret, err := svc.Create(ctx, domain.CreateRequest{
		Name:   "ingest",
		Scopes: []string{domain.ScopeWrite},
	})
	require.NoError(t, err)

	rotated, err := svc.Rotate(ctx, secret.KeyID)
	require.NoError(t, err)
	require.NotEqual(t, secret.KeyID, rotated.KeyID)

	var old domain.APIKey
	require.NoError(t, gdb.Where("key_id = ?", secret.KeyID).First(&old).Error)
	require.NotNil(t, old.ExpiresAt)
	require.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), *old.ExpiresAt, time.Minute)
	require.True(t, old.IsActive)

	var next domain.APIKey
	require.NoError(t, gdb.Where("key_id = ?", rotated.KeyID).First(&next).Error)
	require.NotNil(t, next.RotatedFromKeyID)
	require.Equal(t, secret.KeyID, *next.RotatedFromKeyID)
	require.True(t, next.HasScope(domain.ScopeWrite))
}

func TestRevoke_DeactivatesImmediately(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()

	secret, err := svc.Create(ctx, domain.CreateRequest{Name: "temp"})
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, secret.KeyID))

	var key domain.APIKey
	require.NoError(t, gdb.Where("key_id = ?", secret.KeyID).First(&key).Error)
	require.False(t, key.IsActive)
	require.NotNil(t, key.ExpiresAt)

	_, err = svc.Rotate(ctx, secret.KeyID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
