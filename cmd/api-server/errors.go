package main

import (
	"log/slog"
	"net/http"

	"github.com/HackhimTech/ticketapp/internal/response"
	"github.com/HackhimTech/ticketapp/internal/validator"
)

func (app *application) reportServerError(r *http.Request, err error) {
	requestAttrs := slog.Group("request", "method", r.Method, "url", r.URL.String())
	app.logger.Error(err.Error(), requestAttrs)
}

// errorMessage writes the {error} JSON shape every failure response uses.
func (app *application) errorMessage(w http.ResponseWriter, r *http.Request, status int, message string, headers http.Header) {
	err := response.JSONWithHeaders(w, status, response.JSONObject{"error": message}, headers)
	if err != nil {
		app.reportServerError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.reportServerError(r, err)

	message := "The server encountered a problem and could not process your request"
	app.errorMessage(w, r, http.StatusInternalServerError, message, nil)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.errorMessage(w, r, http.StatusNotFound, "The requested resource could not be found", nil)
}

func (app *application) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	app.errorMessage(w, r, http.StatusMethodNotAllowed, "Method not allowed", nil)
}

func (app *application) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	app.errorMessage(w, r, http.StatusBadRequest, err.Error(), nil)
}

func (app *application) unauthorized(w http.ResponseWriter, r *http.Request) {
	app.errorMessage(w, r, http.StatusUnauthorized, "Unauthorized - invalid or expired session", nil)
}

// failedValidation reports the first failed rule, matching the one-message
// error contract of the API.
func (app *application) failedValidation(w http.ResponseWriter, r *http.Request, v validator.Validator) {
	message := "Invalid request"
	if len(v.Errors) > 0 {
		message = v.Errors[0]
	}
	app.errorMessage(w, r, http.StatusBadRequest, message, nil)
}
