package handler

import (
	"fmt"
	"net/http"

	"github.com/skyaree/rollbox/internal/economy"
	"github.com/skyaree/rollbox/internal/logger"
)

// HandleGetInventory returns a player's aggregated inventory
// @Summary Get player inventory
// @Description Returns the player's items grouped by name and level, with counts
// @Tags player
// @Produce json
// @Param player_id query string true "External player identifier"
// @Success 200 {object} economy.InventoryResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /player/inventory [get]
func HandleGetInventory(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := r.URL.Query().Get("player_id")
		if playerID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "player_id"))
			return
		}

		result, err := svc.Inventory(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to get inventory", "error", err, "player_id", playerID)
			code, msg := mapServiceErrorToUserMessage(err)
			respondError(w, code, msg)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
