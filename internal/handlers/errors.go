package handlers

import (
	"errors"
	"log"
	"net/http"

	"spello/internal/service"
	"spello/internal/validation"
)

// respondServiceError maps service-layer errors to HTTP statuses. Anything
// unrecognized is logged and reported as a 500 without leaking details
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr validation.ValidationError
	if errors.As(err, &validationErr) {
		respondError(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrSessionExpired):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrWordExists):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrWordNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoTargetWord),
		errors.Is(err, service.ErrNoPendingRound),
		errors.Is(err, service.ErrUnknownSound),
		errors.Is(err, service.ErrWordNotAllowed),
		errors.Is(err, service.ErrInvalidResetToken):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnavailable):
		respondError(w, http.StatusBadGateway, "speech service unavailable")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
