package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/apostol1s/technico-web/internal/domain"
	"github.com/apostol1s/technico-web/internal/service"
)

// RepairHandler exposes the work-order lifecycle over HTTP.
type RepairHandler struct {
	repairs service.RepairService
	logger  *zap.Logger
}

func NewRepairHandler(repairs service.RepairService, logger *zap.Logger) *RepairHandler {
	return &RepairHandler{repairs: repairs, logger: logger}
}

func (h *RepairHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateRepairRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	repair, err := h.repairs.Create(r.Context(), req)
	if err != nil {
		h.logger.Warn("Repair create failed", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(repair))
}

func (h *RepairHandler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/repair/updateAdmin/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("invalid repair id"))
		return
	}
	var req service.UpdateRepairAdminRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	req.ID = id
	repair, err := h.repairs.UpdateAdmin(r.Context(), req)
	if err != nil {
		h.logger.Warn("Repair admin update failed", zap.Int64("repair_id", id), zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(repair))
}

func (h *RepairHandler) UpdateOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/repair/updateOwner/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("invalid repair id"))
		return
	}
	var req service.UpdateRepairOwnerRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	req.ID = id
	repair, err := h.repairs.UpdateOwner(r.Context(), req)
	if err != nil {
		h.logger.Warn("Repair owner update failed", zap.Int64("repair_id", id), zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(repair))
}

func (h *RepairHandler) transition(prefix string, op func(r *http.Request, id int64) (*domain.Repair, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, prefix)
		if !ok {
			writeJSON(w, http.StatusBadRequest, Fail("invalid repair id"))
			return
		}
		repair, err := op(r, id)
		if err != nil {
			h.logger.Warn("Repair transition failed", zap.Int64("repair_id", id), zap.Error(err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(repair))
	}
}

func (h *RepairHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/repair/findByID/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("invalid repair id"))
		return
	}
	repair, err := h.repairs.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(repair))
}

func (h *RepairHandler) FindByOwnerID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/repair/findByOwnerID/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("invalid owner id"))
		return
	}
	repairs, err := h.repairs.FindByOwner(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(repairs))
}

func (h *RepairHandler) FindByPropertyID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/repair/findByPropertyID/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("invalid property id"))
		return
	}
	repairs, err := h.repairs.FindByPropertyID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(repairs))
}

// FindByDate answers ?date=2006-01-02T15:04:05 with every repair whose
// scheduled window contains that instant.
func (h *RepairHandler) FindByDate(w http.ResponseWriter, r *http.Request) {
	at, err := domain.ParseDateTime(r.URL.Query().Get("date"))
	if err != nil || at == nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid or missing date"))
		return
	}
	repairs, err := h.repairs.FindByDate(r.Context(), at.Time)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(repairs))
}

func (h *RepairHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	repairs, err := h.repairs.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(repairs))
}

func (h *RepairHandler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/repair/softDelete/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("invalid repair id"))
		return
	}
	// The soft-delete contract is a bare boolean, not an error.
	deleted := h.repairs.SoftDelete(r.Context(), id)
	writeJSON(w, http.StatusOK, Ok(deleted))
}

func (h *RepairHandler) HardDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/repair/hardDelete/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("invalid repair id"))
		return
	}
	if err := h.repairs.HardDelete(r.Context(), id); err != nil {
		h.logger.Warn("Repair hard delete failed", zap.Int64("repair_id", id), zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(true))
}

// ServeHTTP dispatches the /repair/ subtree.
func (h *RepairHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path
	switch {
	case p == "/repair/create":
		requireMethod(w, r, http.MethodPost, h.Create)
	case p == "/repair/findAll":
		requireMethod(w, r, http.MethodGet, h.FindAll)
	case p == "/repair/findByDate":
		requireMethod(w, r, http.MethodGet, h.FindByDate)
	case p == "/repair/export":
		requireMethod(w, r, http.MethodGet, h.Export)
	case strings.HasPrefix(p, "/repair/updateAdmin/"):
		requireMethod(w, r, http.MethodPut, h.UpdateAdmin)
	case strings.HasPrefix(p, "/repair/updateOwner/"):
		requireMethod(w, r, http.MethodPut, h.UpdateOwner)
	case strings.HasPrefix(p, "/repair/accept/"):
		requireMethod(w, r, http.MethodPut, h.transition("/repair/accept/", func(r *http.Request, id int64) (*domain.Repair, error) {
			return h.repairs.Accept(r.Context(), id)
		}))
	case strings.HasPrefix(p, "/repair/decline/"):
		requireMethod(w, r, http.MethodPut, h.transition("/repair/decline/", func(r *http.Request, id int64) (*domain.Repair, error) {
			return h.repairs.Decline(r.Context(), id)
		}))
	case strings.HasPrefix(p, "/repair/start/"):
		requireMethod(w, r, http.MethodPut, h.transition("/repair/start/", func(r *http.Request, id int64) (*domain.Repair, error) {
			return h.repairs.Start(r.Context(), id)
		}))
	case strings.HasPrefix(p, "/repair/complete/"):
		requireMethod(w, r, http.MethodPut, h.transition("/repair/complete/", func(r *http.Request, id int64) (*domain.Repair, error) {
			return h.repairs.Complete(r.Context(), id)
		}))
	case strings.HasPrefix(p, "/repair/findByOwnerID/"):
		requireMethod(w, r, http.MethodGet, h.FindByOwnerID)
	case strings.HasPrefix(p, "/repair/findByPropertyID/"):
		requireMethod(w, r, http.MethodGet, h.FindByPropertyID)
	case strings.HasPrefix(p, "/repair/findByID/"):
		requireMethod(w, r, http.MethodGet, h.FindByID)
	case strings.HasPrefix(p, "/repair/softDelete/"):
		requireMethod(w, r, http.MethodDelete, h.SoftDelete)
	case strings.HasPrefix(p, "/repair/hardDelete/"):
		requireMethod(w, r, http.MethodDelete, h.HardDelete)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
