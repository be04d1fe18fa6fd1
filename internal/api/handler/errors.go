package handler

import (
	"net/http"

	"github.com/dugoutlabs/dugout-data/internal/api/respond"
	"github.com/dugoutlabs/dugout-data/internal/apperr"
)

// writeError maps an error kind to a status code and a stable error code.
// The response carries only the classified message; wrapped causes stay in
// the logs.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindMalformedRecord:
		respond.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case apperr.KindNotFound:
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case apperr.KindExternalService:
		h.logger.Error("external service failure", "error", err)
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Upstream service request failed")
	case apperr.KindConfiguration:
		h.logger.Error("configuration error", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "NOT_CONFIGURED", "Server is missing required configuration")
	default:
		h.logger.Error("internal error", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
