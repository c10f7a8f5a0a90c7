// internal/matching/handlers.go

package matching

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/roomeo-app/roomeo-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	matches, err := h.service.GetMatches(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Complete the lifestyle survey first")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get matches")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, matches)
}

func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	matchID, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	comparison, err := h.service.GetComparison(r.Context(), userID, matchID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMatchNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Match not found")
		case errors.Is(err, ErrNotInMatch):
			utils.RespondWithError(w, http.StatusForbidden, "You are not part of this match")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build comparison")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, comparison)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	stats, err := h.service.GetMatchStats(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Complete the lifestyle survey first")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get match stats")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	matchID, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	var dto UpdateMatchStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.UpdateMatchStatus(r.Context(), matchID, userID, dto.Status); err != nil {
		switch {
		case errors.Is(err, ErrMatchNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Match not found")
		case errors.Is(err, ErrNotInMatch):
			utils.RespondWithError(w, http.StatusForbidden, "You are not part of this match")
		case errors.Is(err, ErrInvalidStatus):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update match status")
		}
		return
	}

	utils.MessageResponse(w, "Match status updated", http.StatusOK)
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	created, err := h.service.GenerateForUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Complete the lifestyle survey first")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate matches")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, GenerateResponse{
		MatchesCreated: len(created),
		MatchIDs:       created,
	})
}

func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	updated, err := h.service.RegenerateForUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Complete the lifestyle survey first")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to regenerate matches")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, RegenerateResponse{MatchesUpdated: updated})
}

// Admin handlers

// GenerateAll kicks off the full O(n^2) batch in the background and returns
// 202 immediately.
func (h *Handler) GenerateAll(w http.ResponseWriter, r *http.Request) {
	go func() {
		result, err := h.service.GenerateAllMatches(contextWithoutCancel(r))
		if err != nil {
			if errors.Is(err, ErrBatchInProgress) {
				log.Println("matching: generate-all skipped, another run holds the lock")
				return
			}
			logBatchOutcome(result, err)
			return
		}
		logBatchOutcome(result, nil)
	}()

	utils.MessageResponse(w, "Match generation started", http.StatusAccepted)
}

func (h *Handler) DeleteUserMatches(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	deleted, err := h.service.DeleteMatchesForUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User has no roommate profile")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete matches")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, DeleteResponse{MatchesDeleted: deleted})
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

// contextWithoutCancel detaches the batch from the admin request so it keeps
// running after the 202 is written.
func contextWithoutCancel(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func logBatchOutcome(result *BatchResult, err error) {
	if err != nil {
		log.Printf("matching: generate-all batch failed: %v", err)
		return
	}
	log.Printf("matching: generate-all batch done: %d users, %d matches created, %d errors",
		result.TotalUsers, result.MatchesCreated, result.Errors)
}
