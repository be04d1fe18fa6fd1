package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dugoutlabs/dugout-data/internal/api/respond"
	"github.com/dugoutlabs/dugout-data/internal/apperr"
	"github.com/dugoutlabs/dugout-data/internal/cache"
	"github.com/dugoutlabs/dugout-data/internal/model"
)

const maxUpdateBody = 1 << 20 // 1 MiB

// ListPlayers returns all players sorted by the requested statistic.
// @Summary List players
// @Description Returns every player, sorted descending by the chosen statistic.
// @Tags players
// @Produce json
// @Param sort_by query string false "Sort key" Enums(hits, home_runs, hits_per_game) default(hits)
// @Success 200 {array} model.Player
// @Failure 400 {object} respond.ErrorResponse
// @Router /players [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	sortBy := r.URL.Query().Get("sort_by")
	if sortBy == "" {
		sortBy = "hits"
	}

	cacheKey := "players:list:" + sortBy
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLPlayerList, true)
		return
	}

	players, err := h.store.List(r.Context(), sortBy)
	if err != nil {
		h.writeError(w, err)
		return
	}

	data, err := json.Marshal(players)
	if err != nil {
		h.writeError(w, err)
		return
	}

	etag := h.cache.Set(cacheKey, data, cache.TTLPlayerList)
	respond.WriteJSON(w, data, etag, cache.TTLPlayerList, false)
}

// GetPlayer returns one player by identity.
// @Summary Get player
// @Description Returns a single player by id.
// @Tags players
// @Produce json
// @Param playerID path int true "Player ID"
// @Success 200 {object} model.Player
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /players/{playerID} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.playerID(w, r)
	if !ok {
		return
	}

	player, err := h.store.Player(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if player == nil {
		h.writeError(w, apperr.Newf(apperr.KindNotFound, "player %d not found", id))
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, player)
}

// UpdatePlayer applies a partial edit to a player and marks it locally
// edited unless the payload says otherwise.
// @Summary Update player
// @Description Applies an allow-listed partial update. Unknown fields are rejected; null values coerce to the field's zero value. The record is marked locally edited.
// @Tags players
// @Accept json
// @Produce json
// @Param playerID path int true "Player ID"
// @Param patch body map[string]interface{} true "Fields to update"
// @Success 200 {object} model.Player
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /players/{playerID} [put]
func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.playerID(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUpdateBody))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "Could not read request body")
		return
	}

	patch, err := model.ParsePatch(body)
	if err != nil {
		h.writeError(w, err)
		return
	}

	player, err := h.store.Player(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if player == nil {
		h.writeError(w, apperr.Newf(apperr.KindNotFound, "player %d not found", id))
		return
	}

	patch.ApplyEdit(player)

	matched, err := h.store.Update(r.Context(), *player)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !matched {
		h.writeError(w, apperr.Newf(apperr.KindNotFound, "player %d not found", id))
		return
	}

	h.cache.Invalidate("players:")
	respond.WriteJSONObject(w, http.StatusOK, player)
}

// playerID parses the path parameter, writing a 400 on failure.
func (h *Handler) playerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "playerID"))
	if err != nil || id <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "playerID must be a positive integer")
		return 0, false
	}
	return id, true
}
