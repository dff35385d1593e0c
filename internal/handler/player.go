package handler

import (
	"fmt"
	"net/http"

	"github.com/skyaree/rollbox/internal/economy"
	"github.com/skyaree/rollbox/internal/logger"
)

// HandleGetStatus returns a player's balance, creating the player on first
// reference.
// @Summary Get player status
// @Description Returns the player's current balance; new players start at 100
// @Tags player
// @Produce json
// @Param player_id query string true "External player identifier"
// @Success 200 {object} economy.StatusResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /player/status [get]
func HandleGetStatus(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := r.URL.Query().Get("player_id")
		if playerID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "player_id"))
			return
		}

		status, err := svc.Status(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to get status", "error", err, "player_id", playerID)
			code, msg := mapServiceErrorToUserMessage(err)
			respondError(w, code, msg)
			return
		}

		respondJSON(w, http.StatusOK, status)
	}
}
