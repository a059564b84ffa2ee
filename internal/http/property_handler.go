package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/apostol1s/technico-web/internal/service"
)

// PropertyHandler exposes the property lifecycle over HTTP.
type PropertyHandler struct {
	properties service.PropertyService
	logger     *zap.Logger
}

func NewPropertyHandler(properties service.PropertyService, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{properties: properties, logger: logger}
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePropertyRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	property, err := h.properties.Create(r.Context(), req)
	if err != nil {
		h.logger.Warn("Property create failed", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(property))
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/property/update/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("invalid property id"))
		return
	}
	var req service.UpdatePropertyRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	req.ID = id
	property, err := h.properties.Update(r.Context(), req)
	if err != nil {
		h.logger.Warn("Property update failed", zap.Int64("property_id", id), zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(property))
}

func (h *PropertyHandler) FindByParcelID(w http.ResponseWriter, r *http.Request) {
	parcelID, ok := pathTail(r, "/property/findByParcelId/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("missing parcel id"))
		return
	}
	property, err := h.properties.FindByParcelID(r.Context(), parcelID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(property))
}

func (h *PropertyHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/property/findByID/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("invalid property id"))
		return
	}
	property, err := h.properties.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(property))
}

func (h *PropertyHandler) FindByOwnerTaxID(w http.ResponseWriter, r *http.Request) {
	taxID, ok := pathTail(r, "/property/findByTaxId/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("missing tax id"))
		return
	}
	properties, err := h.properties.FindByOwnerTaxID(r.Context(), taxID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(properties))
}

func (h *PropertyHandler) FindNonDeletedByTaxID(w http.ResponseWriter, r *http.Request) {
	taxID, ok := pathTail(r, "/property/findNonDeletedByTaxId/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("missing tax id"))
		return
	}
	properties, err := h.properties.FindByOwnerTaxIDExcludingDeleted(r.Context(), taxID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(properties))
}

func (h *PropertyHandler) FindByOwnerID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/property/findByOwnerID/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("invalid owner id"))
		return
	}
	properties, err := h.properties.FindByOwnerID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(properties))
}

func (h *PropertyHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	properties, err := h.properties.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(properties))
}

func (h *PropertyHandler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/property/softDelete/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("invalid property id"))
		return
	}
	if err := h.properties.SoftDelete(r.Context(), id); err != nil {
		h.logger.Warn("Property soft delete failed", zap.Int64("property_id", id), zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(true))
}

func (h *PropertyHandler) HardDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/property/hardDelete/")
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("invalid property id"))
		return
	}
	if err := h.properties.HardDelete(r.Context(), id); err != nil {
		h.logger.Warn("Property hard delete failed", zap.Int64("property_id", id), zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(true))
}

// ServeHTTP dispatches the /property/ subtree.
func (h *PropertyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path
	switch {
	case p == "/property/create":
		requireMethod(w, r, http.MethodPost, h.Create)
	case p == "/property/findAll":
		requireMethod(w, r, http.MethodGet, h.FindAll)
	case strings.HasPrefix(p, "/property/findByParcelId/"):
		requireMethod(w, r, http.MethodGet, h.FindByParcelID)
	case strings.HasPrefix(p, "/property/findNonDeletedByTaxId/"):
		requireMethod(w, r, http.MethodGet, h.FindNonDeletedByTaxID)
	case strings.HasPrefix(p, "/property/findByTaxId/"):
		requireMethod(w, r, http.MethodGet, h.FindByOwnerTaxID)
	case strings.HasPrefix(p, "/property/findByOwnerID/"):
		requireMethod(w, r, http.MethodGet, h.FindByOwnerID)
	case strings.HasPrefix(p, "/property/findByID/"):
		requireMethod(w, r, http.MethodGet, h.FindByID)
	case strings.HasPrefix(p, "/property/update/"):
		requireMethod(w, r, http.MethodPut, h.Update)
	case strings.HasPrefix(p, "/property/softDelete/"):
		requireMethod(w, r, http.MethodDelete, h.SoftDelete)
	case strings.HasPrefix(p, "/property/hardDelete/"):
		requireMethod(w, r, http.MethodDelete, h.HardDelete)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
