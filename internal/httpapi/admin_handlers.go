package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"creatorum.org/internal/adminauth"
	"creatorum.org/internal/audit"
)

type adminSignupRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	InviteCode string `json:"invite_code"`
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginResponse struct {
	Token string          `json:"token"`
	Admin adminauth.Admin `json:"admin"`
}

func (a *API) handleAdminSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req adminSignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" || req.InviteCode == "" {
		writeError(w, r, http.StatusBadRequest, "email, password and invite_code are required")
		return
	}

	admin, err := a.auth.Signup(req.Email, req.Password, req.InviteCode)
	if err != nil {
		handleAuthError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "admin.signup", map[string]any{
		"email": admin.Email,
	})

	writeJSON(w, http.StatusCreated, map[string]any{"admin": admin})
}

func (a *API) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req adminLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "email and password are required")
		return
	}

	token, admin, err := a.auth.Login(req.Email, req.Password)
	if err != nil {
		// Failed logins are audited with the attempted address only; the
		// response body never says whether the account exists.
		_ = audit.LogEvent(r.Context(), "admin.login.denied", map[string]any{
			"email": strings.ToLower(strings.TrimSpace(req.Email)),
		})
		handleAuthError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "admin.login", map[string]any{
		"email": admin.Email,
	})

	writeJSON(w, http.StatusOK, adminLoginResponse{Token: token, Admin: admin})
}

func (a *API) handleAdminMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	admin, ok := adminauth.AdminFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing bearer token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"admin": admin})
}

func (a *API) handleAdminWaitlist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	a.listWaitlist(w, r)
}

func (a *API) handleAdminWaitlistCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	a.countWaitlist(w, r)
}

// handleAuthError maps credential-subsystem errors onto HTTP statuses:
// malformed input 400, authentication failure 401, invite failure 403,
// duplicate signup 409.
func handleAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, adminauth.ErrInvalidEmail), errors.Is(err, adminauth.ErrWeakPassword):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, adminauth.ErrInvalidInvite):
		writeError(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, adminauth.ErrDuplicateAdmin):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, adminauth.ErrInvalidCredentials),
		errors.Is(err, adminauth.ErrInvalidToken),
		errors.Is(err, adminauth.ErrTokenExpired),
		errors.Is(err, adminauth.ErrAdminNotFound):
		writeError(w, r, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
