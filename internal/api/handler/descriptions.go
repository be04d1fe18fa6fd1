package handler

import (
	"net/http"

	"github.com/dugoutlabs/dugout-data/internal/api/respond"
)

// GetPlayerDescription returns the generated description for a player,
// producing and caching it on first request.
// @Summary Get player description
// @Description Returns the natural-language description for a player. Generated once via the text provider and cached in the database thereafter.
// @Tags players
// @Produce json
// @Param playerID path int true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /players/{playerID}/description [get]
func (h *Handler) GetPlayerDescription(w http.ResponseWriter, r *http.Request) {
	id, ok := h.playerID(w, r)
	if !ok {
		return
	}

	text, err := h.describe.GetOrGenerate(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"player_id":   id,
		"description": text,
	})
}
