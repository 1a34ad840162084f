package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	apikeydomain "github.com/medcouncil/registry/internal/apikey/domain"
)

type ActorType string

const (
	ActorAPIKey ActorType = "api_key"
	ActorSystem ActorType = "system"
)

type Actor struct {
	Type   ActorType
	KeyID  string
	Role   string
	Scopes []string
}

// HasScope reports whether the actor carries the requested scope.
func (a Actor) HasScope(scope string) bool {
	for _, s := range a.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

func (s *Server) actorFromContext(c *gin.Context) (Actor, bool) {
	ctx := c.Request.Context()

	authType, _ := ctx.Value(contextAuthTypeKey).(string)
	if authType != string(ActorAPIKey) {
		return Actor{}, false
	}

	keyID, _ := ctx.Value(contextAPIKeyIDKey).(string)
	role, _ := ctx.Value(contextAPIKeyRoleKey).(string)
	scopes, _ := ctx.Value(contextAPIKeyScopesKey).([]string)

	return Actor{
		Type:   ActorAPIKey,
		KeyID:  keyID,
		Role:   role,
		Scopes: scopes,
	}, true
}

// RequireScope gates a route on an API-key scope.
func (s *Server) RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := s.actorFromContext(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !actor.HasScope(scope) {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

// AuthorizeAction gates a route on the role policy attached to the calling
// key. Scope gating still applies; this is the finer-grained check for
// privileged operations.
func (s *Server) AuthorizeAction(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := s.actorFromContext(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if s.authzSvc == nil {
			AbortWithError(c, ErrForbidden)
			return
		}
		role := strings.TrimSpace(actor.Role)
		if role == "" {
			AbortWithError(c, ErrForbidden)
			return
		}
		if err := s.authzSvc.Authorize(c.Request.Context(), role, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func isAPIKeyValidationError(err error) bool {
	switch err {
	case apikeydomain.ErrInvalidName,
		apikeydomain.ErrInvalidScope,
		apikeydomain.ErrInvalidRole,
		apikeydomain.ErrInvalidKeyID:
		return true
	default:
		return false
	}
}
