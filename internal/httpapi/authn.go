package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"creatorum.org/internal/adminauth"
	"creatorum.org/internal/audit"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

// requireAdmin wraps a handler so it only runs for requests presenting a
// valid bearer token. The verified administrator and the raw token are
// attached to the request context.
func (a *API) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
			writeError(w, r, http.StatusUnauthorized, err.Error())
			return
		}

		admin, err := a.auth.Verify(token)
		if err != nil {
			_ = audit.LogEvent(r.Context(), "admin.token.denied", map[string]any{
				"reason": err.Error(),
			})
			w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
			handleAuthError(w, r, err)
			return
		}

		ctx := adminauth.ContextWithAdmin(r.Context(), admin)
		ctx = adminauth.ContextWithToken(ctx, token)
		next(w, r.WithContext(ctx))
	}
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}
