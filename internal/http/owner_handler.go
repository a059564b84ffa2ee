package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/apostol1s/technico-web/internal/service"
)

// OwnerHandler exposes the owner lifecycle over HTTP.
type OwnerHandler struct {
	owners service.OwnerService
	logger *zap.Logger
}

func NewOwnerHandler(owners service.OwnerService, logger *zap.Logger) *OwnerHandler {
	return &OwnerHandler{owners: owners, logger: logger}
}

func (h *OwnerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateOwnerRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	owner, err := h.owners.Create(r.Context(), req)
	if err != nil {
		h.logger.Warn("Owner create failed", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(owner))
}

func (h *OwnerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/owner/update/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("invalid owner id"))
		return
	}
	var req service.UpdateOwnerRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	req.ID = id
	owner, err := h.owners.Update(r.Context(), req)
	if err != nil {
		h.logger.Warn("Owner update failed", zap.Int64("owner_id", id), zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(owner))
}

func (h *OwnerHandler) FindByTaxID(w http.ResponseWriter, r *http.Request) {
	taxID, ok := pathTail(r, "/owner/findByTaxId/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("missing tax id"))
		return
	}
	owner, err := h.owners.FindByTaxID(r.Context(), taxID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(owner))
}

func (h *OwnerHandler) FindByEmail(w http.ResponseWriter, r *http.Request) {
	email, ok := pathTail(r, "/owner/findByEmail/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("missing email"))
		return
	}
	owner, err := h.owners.FindByEmail(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(owner))
}

func (h *OwnerHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/owner/findByID/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("invalid owner id"))
		return
	}
	owner, err := h.owners.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(owner))
}

func (h *OwnerHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	owners, err := h.owners.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(owners))
}

func (h *OwnerHandler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/owner/softDelete/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("invalid owner id"))
		return
	}
	// The soft-delete contract is a bare boolean, not an error.
	deleted := h.owners.SoftDelete(r.Context(), id)
	writeJSON(w, http.StatusOK, Ok(deleted))
}

func (h *OwnerHandler) HardDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/owner/hardDelete/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("invalid owner id"))
		return
	}
	if err := h.owners.HardDelete(r.Context(), id); err != nil {
		h.logger.Warn("Owner hard delete failed", zap.Int64("owner_id", id), zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(true))
}

// ServeHTTP dispatches the /owner/ subtree.
func (h *OwnerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path
	switch {
	case p == "/owner/create":
		requireMethod(w, r, http.MethodPost, h.Create)
	case p == "/owner/findAll":
		requireMethod(w, r, http.MethodGet, h.FindAll)
	case strings.HasPrefix(p, "/owner/findByTaxId/"):
		requireMethod(w, r, http.MethodGet, h.FindByTaxID)
	case strings.HasPrefix(p, "/owner/findByEmail/"):
		requireMethod(w, r, http.MethodGet, h.FindByEmail)
	case strings.HasPrefix(p, "/owner/findByID/"):
		requireMethod(w, r, http.MethodGet, h.FindByID)
	case strings.HasPrefix(p, "/owner/update/"):
		requireMethod(w, r, http.MethodPut, h.Update)
	case strings.HasPrefix(p, "/owner/softDelete/"):
		requireMethod(w, r, http.MethodDelete, h.SoftDelete)
	case strings.HasPrefix(p, "/owner/hardDelete/"):
		requireMethod(w, r, http.MethodDelete, h.HardDelete)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string, next http.HandlerFunc) {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	next(w, r)
}
