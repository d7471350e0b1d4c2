package middlewares

import (
	"context"
	"net/http"
	"strings"

	"teleclinic-service/internal/app/models"
	"teleclinic-service/internal/pkg/constvars"
	"teleclinic-service/internal/pkg/exceptions"
	"teleclinic-service/internal/pkg/utils"
)

// Authenticate parses the bearer JWT, loads the session from redis, and puts
// it into the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		sessionID, err := utils.ParseSessionJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		session, err := m.RedisRepository.GetSession(r.Context(), sessionID)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}
		if session == nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrSessionInvalid(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_KEY, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole guards a subtree to sessions holding one of the given roles.
// It must run after Authenticate.
func (m *Middlewares) RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := r.Context().Value(constvars.CONTEXT_SESSION_KEY).(*models.Session)
			if !ok || session == nil {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrSessionInvalid(nil))
				return
			}
			if _, ok := allowed[session.Role]; !ok {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleNotAllowed(nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
