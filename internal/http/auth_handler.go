package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/apostol1s/technico-web/internal/service"
)

// AuthHandler exposes sign-in, sign-out and session introspection.
type AuthHandler struct {
	auth   service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req service.SignInRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	resp, err := h.auth.SignIn(r.Context(), req)
	if err != nil {
		h.logger.Warn("Sign-in failed", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, Fail("missing bearer token"))
		return
	}
	owner, err := h.auth.Resolve(r.Context(), token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, Fail("invalid or expired session"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(owner))
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, Fail("missing bearer token"))
		return
	}
	if err := h.auth.SignOut(r.Context(), token); err != nil {
		h.logger.Warn("Sign-out failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("sign-out failed"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(true))
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// ServeHTTP dispatches the /auth/ subtree.
func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/auth/signIn":
		requireMethod(w, r, http.MethodPost, h.SignIn)
	case "/auth/signOut":
		requireMethod(w, r, http.MethodPost, h.SignOut)
	case "/auth/me":
		requireMethod(w, r, http.MethodGet, h.Me)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
