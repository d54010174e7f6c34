package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Dubemernest23/akuko/errs"
)

// Responder writes JSON responses and maps errors onto the ApiErr taxonomy.
// development controls whether error causes leak into response bodies; in
// production the client only sees the generic message.
type Responder struct {
	logger      zerolog.Logger
	development bool
}

func NewResponder(logger zerolog.Logger, development bool) Responder {
	return Responder{logger: logger, development: development}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return a generic internal error. The
	// underlying message is only included in development builds.
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())

		response := map[string]any{
			"error":   "Internal Server Error",
			"message": "Something went wrong!",
			"status":  "error",
		}
		if r.development {
			response["details"] = err.Error()
		}
		w.WriteHeader(http.StatusInternalServerError)
		r.WriteJSON(w, response)
		return
	}

	response := map[string]any{
		"error":  apiErr.Error(),
		"status": "error",
	}

	// Field information for validation errors
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}

	if r.development {
		if apiErr.Details != "" {
			response["details"] = apiErr.Details
		}
		if apiErr.Cause != nil {
			response["cause"] = apiErr.GetFullError()
		}
	}

	w.WriteHeader(apiErr.StatusCode)
	r.WriteJSON(w, response)
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	var apiErr *errs.ApiErr
	if errors.As(cause, &apiErr) {
		// Validation and conflict errors from the repos already carry the
		// right status.
		return cause
	}
	return errs.NewDatabaseError(operation, entity, cause)
}
