package server

import (
	"errors"
	"net/http"

	"github.com/katalvlaran/lvpart/internal/jobs"
	"github.com/katalvlaran/lvpart/partition"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest        = "bad_request"
	CodeValidation        = "validation_failed"
	CodeInvalidGroupCount = "invalid_group_count"
	CodeLengthMismatch    = "length_mismatch"
	CodeMissingWeight     = "missing_weight"
	CodeNonFiniteWeight   = "non_finite_weight"
	CodeCombinationLimit  = "combination_limit"
	CodeInvalidOption     = "invalid_option"
	CodeInternalInvariant = "internal_invariant"
	CodeCanceled          = "canceled"
	CodeNotFound          = "not_found"
	CodeUnavailable       = "unavailable"
	CodeInternal          = "internal"
)

// errorClass maps a sentinel to an HTTP status and code.
type errorClass struct {
	target error
	status int
	code   string
}

// errorClasses is checked in order with errors.Is.
var errorClasses = [...]errorClass{
	{partition.ErrInvalidGroupCount, http.StatusUnprocessableEntity, CodeInvalidGroupCount},
	{partition.ErrLengthMismatch, http.StatusUnprocessableEntity, CodeLengthMismatch},
	{partition.ErrMissingWeight, http.StatusUnprocessableEntity, CodeMissingWeight},
	{partition.ErrNonFiniteWeight, http.StatusUnprocessableEntity, CodeNonFiniteWeight},
	{partition.ErrCombinationLimit, http.StatusUnprocessableEntity, CodeCombinationLimit},
	{partition.ErrInvalidOption, http.StatusUnprocessableEntity, CodeInvalidOption},
	{partition.ErrInternalInvariant, http.StatusInternalServerError, CodeInternalInvariant},
	{partition.ErrCanceled, http.StatusServiceUnavailable, CodeCanceled},
	{jobs.ErrNotFound, http.StatusNotFound, CodeNotFound},
	{jobs.ErrClosed, http.StatusServiceUnavailable, CodeUnavailable},
}

// classify returns the status and code for err.
func classify(err error) (int, string) {
	for _, c := range errorClasses {
		if errors.Is(err, c.target) {
			return c.status, c.code
		}
	}

	return http.StatusInternalServerError, CodeInternal
}
