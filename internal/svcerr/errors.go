package svcerr

import (
	"errors"
	"net/http"
)

// Conflict and validation errors are definitive rejections: the caller gets a
// typed result and the ledger is left unchanged. None of them are retryable.
var (
	ErrInvalidRange          = errors.New("booking end date before start date")
	ErrSpotOccupied          = errors.New("spot already booked for the requested dates")
	ErrEmployeeAlreadyBooked = errors.New("employee already holds a spot for the requested dates")
	ErrNotFound              = errors.New("not found")
)

// HTTPStatus maps service errors onto response codes.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, ErrSpotOccupied), errors.Is(err, ErrEmployeeAlreadyBooked):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
