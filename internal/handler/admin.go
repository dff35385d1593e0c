package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/skyaree/rollbox/internal/economy"
	"github.com/skyaree/rollbox/internal/logger"
)

// CreditRequest is the body of an admin credit request
type CreditRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=128,excludesall=\x00\n\r\t"`
	Amount   int    `json:"amount" validate:"required,min=1,max=1000000"`
}

// CreditResponse is the result of a credit operation
type CreditResponse struct {
	PlayerID string `json:"player_id"`
	Balance  int    `json:"balance"`
}

// HandleCredit grants currency to a player (admin/system action)
// @Summary Credit a player
// @Description Atomically adds currency to a player's balance
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreditRequest true "Credit details"
// @Success 200 {object} CreditResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/credit [post]
func HandleCredit(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreditRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode credit request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid credit request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		balance, err := svc.Credit(r.Context(), req.PlayerID, req.Amount)
		if err != nil {
			log.Error("Failed to credit player", "error", err, "player_id", req.PlayerID)
			code, msg := mapServiceErrorToUserMessage(err)
			respondError(w, code, msg)
			return
		}

		log.Info("Player credited", "player_id", req.PlayerID, "amount", req.Amount, "balance", balance)

		respondJSON(w, http.StatusOK, CreditResponse{PlayerID: req.PlayerID, Balance: balance})
	}
}
