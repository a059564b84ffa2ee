package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router wraps the standard library http.ServeMux; the route surface is
// small enough that a third-party router buys nothing.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) RegisterOwnerRoutes(h *OwnerHandler) {
	r.mux.Handle("/owner/", h)
}

func (r *Router) RegisterPropertyRoutes(h *PropertyHandler) {
	r.mux.Handle("/property/", h)
}

func (r *Router) RegisterRepairRoutes(h *RepairHandler) {
	r.mux.Handle("/repair/", h)
}

func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.mux.Handle("/auth/", h)
}
