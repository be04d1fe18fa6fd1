package handler

import (
	"net/http"

	"github.com/dugoutlabs/dugout-data/internal/api/respond"
)

// SyncPlayers pulls the external feed and reconciles it into storage.
// @Summary Sync players from external feed
// @Description Fetches the full player set from the statistics feed and merges it: existing players (matched by name) are overwritten except for their locally-edited flag, new players are inserted.
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} respond.ErrorResponse
// @Router /sync [post]
func (h *Handler) SyncPlayers(w http.ResponseWriter, r *http.Request) {
	result, err := h.syncer.Run(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.cache.Invalidate("players:")
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"created": result.Created,
		"updated": result.Updated,
	})
}
