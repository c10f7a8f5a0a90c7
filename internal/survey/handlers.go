// internal/survey/handlers.go

package survey

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/roomeo-app/roomeo-backend/internal/common/utils"
	"github.com/roomeo-app/roomeo-backend/internal/matching"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Submit(r.Context(), userID, &req)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save survey")
		return
	}

	status := http.StatusOK
	if resp.NewProfile {
		status = http.StatusCreated
	}
	utils.RespondWithJSON(w, status, resp)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, matching.ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "No survey on file")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, profile)
}
