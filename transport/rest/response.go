package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/checkers"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := errorStatus(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	writeJSON(w, status, errorResponse{Error: message})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrGamePaused),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrNothingToUndo),
		errors.Is(err, apperror.ErrNoHint):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrIllegalMove),
		errors.Is(err, apperror.ErrUnknownGame),
		errors.Is(err, apperror.ErrUnknownMode),
		errors.Is(err, apperror.ErrInvalidSide),
		errors.Is(err, checkers.ErrUnknownDifficulty):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
