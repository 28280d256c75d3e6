package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sweetslice/go-backend/internal/usecase"
	"github.com/sweetslice/go-backend/pkg/e"
	"github.com/sweetslice/go-backend/pkg/logger"
)

type ctxKey string

const (
	principalCtxKey ctxKey = "principal"
	sessionCtxKey   ctxKey = "cart_session"
)

const sessionCookieName = "cart_session"

// Middleware holds the pieces shared by all route guards.
type Middleware struct {
	tokens usecase.TokenService
	logger logger.Logger
}

func NewMiddleware(tokens usecase.TokenService, logger logger.Logger) *Middleware {
	return &Middleware{tokens: tokens, logger: logger}
}

// Authenticate requires a valid Bearer token and stores the principal in the
// request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			WriteError(w, e.ErrUnauthorized)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			WriteError(w, e.ErrInvalidToken)
			return
		}

		principal, err := m.tokens.Validate(parts[1])
		if err != nil {
			m.logger.Debugf("token rejected: %v", err)
			WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), principalCtxKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin allows only authenticated admins through. Must run after
// Authenticate.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFromCtx(r.Context())
		if principal == nil {
			WriteError(w, e.ErrUnauthorized)
			return
		}
		if !principal.IsAdmin() {
			WriteError(w, e.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// CartSession attaches a browsing-session id to the request, minting a cookie
// on first contact. The cart lives server-side under this id.
func (m *Middleware) CartSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		} else {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int((30 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionCtxKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PrincipalFromCtx returns the authenticated caller, or nil.
func PrincipalFromCtx(ctx context.Context) *usecase.Principal {
	principal, _ := ctx.Value(principalCtxKey).(*usecase.Principal)
	return principal
}

// SessionFromCtx returns the browsing-session id attached by CartSession.
func SessionFromCtx(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionCtxKey).(string)
	return sessionID
}
