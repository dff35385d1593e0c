package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/skyaree/rollbox/internal/economy"
	"github.com/skyaree/rollbox/internal/logger"
)

// RollRequest is the body of a roll request
type RollRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=128,excludesall=\x00\n\r\t"`
}

// HandleRoll performs one paid roll for a player
// @Summary Perform a roll
// @Description Debits the roll cost and grants a random item from the catalog
// @Tags game
// @Accept json
// @Produce json
// @Param request body RollRequest true "Roll details"
// @Success 200 {object} roll.Result
// @Failure 400 {object} ErrorResponse "Insufficient funds or invalid request"
// @Failure 500 {object} ErrorResponse
// @Router /game/roll [post]
func HandleRoll(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RollRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode roll request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid roll request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		result, err := svc.Roll(r.Context(), req.PlayerID)
		if err != nil {
			log.Error("Failed to roll", "error", err, "player_id", req.PlayerID)
			code, msg := mapServiceErrorToUserMessage(err)
			respondError(w, code, msg)
			return
		}

		log.Info("Roll succeeded", "player_id", req.PlayerID, "item", result.ItemName, "balance", result.NewBalance)

		respondJSON(w, http.StatusOK, result)
	}
}
