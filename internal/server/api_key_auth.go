package server

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	apikeydomain "github.com/medcouncil/registry/internal/apikey/domain"
	"go.uber.org/zap"
)

const (
	contextAuthTypeKey     = "auth_type"
	contextAPIKeyIDKey     = "api_key_id"
	contextAPIKeyRoleKey   = "api_key_role"
	contextAPIKeyScopesKey = "api_key_scopes"
)

// APIKeyRequired authenticates requests with a bearer API key. The caller's
// role and scopes are derived solely from the api_keys table.
func (s *Server) APIKeyRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		hash := apikeydomain.HashAPIKey(parts[1])
		now := time.Now().UTC()

		record, err := s.apiKeyRepo.FindActiveByHash(c.Request.Context(), s.db, hash, now)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if record == nil || subtle.ConstantTimeCompare([]byte(record.KeyHash), []byte(hash)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if err := s.apiKeyRepo.TouchLastUsed(c.Request.Context(), s.db, int64(record.ID), now); err != nil {
			s.log.Warn("failed to stamp api key usage", zap.Error(err))
		}

		scopes := make([]string, 0, len(record.Scopes))
		scopes = append(scopes, record.Scopes...)

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, contextAuthTypeKey, string(ActorAPIKey))
		ctx = context.WithValue(ctx, contextAPIKeyIDKey, record.KeyID)
		ctx = context.WithValue(ctx, contextAPIKeyRoleKey, record.Role)
		ctx = context.WithValue(ctx, contextAPIKeyScopesKey, scopes)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
