package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/rs/zerolog/log"

	"github.com/andrewpaige1/fliply-api/repository"
)

// MessageResponse is the body of every non-listing response.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// errorMessages are the client-facing messages of one operation.
type errorMessages struct {
	NotFound  string
	Forbidden string
	Conflict  string
	Internal  string
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func respondMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, r, status, MessageResponse{Message: message})
}

// respondRepoError maps a repository error to its status code and message.
func respondRepoError(w http.ResponseWriter, r *http.Request, op string, err error, msgs errorMessages) {
	var inputErr *repository.InputError
	switch {
	case errors.As(err, &inputErr):
		respondMessage(w, r, http.StatusBadRequest, inputErr.Message)
	case errors.Is(err, repository.ErrInvalidInput):
		respondMessage(w, r, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, repository.ErrNotFound):
		respondMessage(w, r, http.StatusNotFound, msgs.NotFound)
	case errors.Is(err, repository.ErrForbidden):
		log.Warn().Err(err).Msg(op + ": ownership check failed")
		respondMessage(w, r, http.StatusForbidden, msgs.Forbidden)
	case errors.Is(err, repository.ErrConflict):
		respondMessage(w, r, http.StatusConflict, msgs.Conflict)
	default:
		log.Error().Err(err).Msg(op + ": request failed")
		respondJSON(w, r, http.StatusInternalServerError, MessageResponse{Message: msgs.Internal, Error: err.Error()})
	}
}
