package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/HackhimTech/ticketapp/internal/ctxstore"
	"github.com/HackhimTech/ticketapp/internal/model"
	"github.com/HackhimTech/ticketapp/internal/request"
	"github.com/HackhimTech/ticketapp/internal/response"
	"github.com/HackhimTech/ticketapp/internal/storage"
	"github.com/HackhimTech/ticketapp/internal/validator"
)

// handleAction dispatches on the ?action= query parameter. Method checks
// happen per action so a wrong method yields 405 rather than 400.
func (app *application) handleAction(w http.ResponseWriter, r *http.Request) {
	switch actionFromRequest(r) {
	case "login":
		app.handleLogin(w, r)
	case "signup":
		app.handleSignup(w, r)
	case "logout":
		app.handleLogout(w, r)
	case "tickets":
		app.handleTickets(w, r)
	case "ticket":
		app.handleTicket(w, r)
	default:
		app.errorMessage(w, r, http.StatusBadRequest, "Unknown action", nil)
	}
}

type requestLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type requestSignup struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type responseSession struct {
	Session model.Session `json:"session"`
}

func (app *application) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.methodNotAllowed(w, r)
		return
	}

	ctx := r.Context()
	logger := app.requestLogger(ctx)

	var input requestLogin
	if err := request.DecodeJSON(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Password = strings.TrimSpace(input.Password)

	var v validator.Validator
	validateRequestLogin(&v, input)
	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	users := storage.NewUserDAO(logger, app.store)

	user, err := users.GetByCredentials(ctx, input.Username, input.Password)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			app.errorMessage(w, r, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}

		app.serverError(w, r, err)
		return
	}

	sessions := storage.NewSessionDAO(logger, app.store)

	session, err := sessions.Create(ctx, user)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, responseSession{Session: session}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.methodNotAllowed(w, r)
		return
	}

	ctx := r.Context()
	logger := app.requestLogger(ctx)

	var input requestSignup
	if err := request.DecodeJSON(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Password = strings.TrimSpace(input.Password)
	input.Name = strings.TrimSpace(input.Name)

	var v validator.Validator
	validateRequestSignup(&v, input)
	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	users := storage.NewUserDAO(logger, app.store)

	user, err := users.Insert(ctx, storage.InsertUserDTO{
		Username: input.Username,
		Password: input.Password,
		Name:     input.Name,
	})
	if err != nil {
		if errors.Is(err, model.ErrExists) {
			app.errorMessage(w, r, http.StatusConflict, "User already exists", nil)
			return
		}

		app.serverError(w, r, err)
		return
	}

	sessions := storage.NewSessionDAO(logger, app.store)

	session, err := sessions.Create(ctx, user)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, responseSession{Session: session}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.methodNotAllowed(w, r)
		return
	}

	ctx := r.Context()

	if token := sessionTokenFromRequest(r); token != "" {
		sessions := storage.NewSessionDAO(app.requestLogger(ctx), app.store)
		if err := sessions.Destroy(ctx, token); err != nil {
			app.serverError(w, r, err)
			return
		}
	}

	if err := response.JSON(w, http.StatusOK, response.JSONObject{"ok": true}); err != nil {
		app.serverError(w, r, err)
	}
}

type requestCreateTicket struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      model.Status `json:"status"`
	Priority    string       `json:"priority"`
}

type responseTicket struct {
	Ticket model.Ticket `json:"ticket"`
}

type responseTickets struct {
	Tickets []model.Ticket `json:"tickets"`
}

func (app *application) handleTickets(w http.ResponseWriter, r *http.Request) {
	session, ok := app.authenticate(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	logger := app.requestLogger(ctx)

	tickets := storage.NewTicketDAO(logger, app.store)

	switch r.Method {
	case http.MethodGet:
		all, err := tickets.All(ctx)
		if err != nil {
			app.serverError(w, r, err)
			return
		}

		if err := response.JSON(w, http.StatusOK, responseTickets{Tickets: all}); err != nil {
			app.serverError(w, r, err)
		}

	case http.MethodPost:
		var input requestCreateTicket
		if err := request.DecodeJSON(w, r, &input); err != nil {
			app.badRequest(w, r, err)
			return
		}

		input.Title = strings.TrimSpace(input.Title)
		input.Description = strings.TrimSpace(input.Description)
		input.Status = model.Status(strings.TrimSpace(string(input.Status)))

		var v validator.Validator
		validateRequestCreateTicket(&v, input)
		if v.HasErrors() {
			app.failedValidation(w, r, v)
			return
		}

		// Owner always comes from the session, never from the client.
		ticket, err := tickets.Insert(ctx, storage.InsertTicketDTO{
			Title:       input.Title,
			Description: input.Description,
			Status:      input.Status,
			Priority:    input.Priority,
			Owner:       session.User.Username,
		})
		if err != nil {
			app.serverError(w, r, err)
			return
		}

		if err := response.JSON(w, http.StatusCreated, responseTicket{Ticket: ticket}); err != nil {
			app.serverError(w, r, err)
		}

	default:
		app.methodNotAllowed(w, r)
	}
}

type requestUpdateTicket struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Status      *model.Status `json:"status"`
}

func (app *application) handleTicket(w http.ResponseWriter, r *http.Request) {
	if _, ok := app.authenticate(w, r); !ok {
		return
	}

	ctx := r.Context()
	logger := app.requestLogger(ctx)

	id := ticketIDFromRequest(r)
	if id == "" {
		app.errorMessage(w, r, http.StatusBadRequest, "Missing ticket id", nil)
		return
	}

	tickets := storage.NewTicketDAO(logger, app.store)

	switch r.Method {
	case http.MethodPut:
		var input requestUpdateTicket
		if err := request.DecodeJSON(w, r, &input); err != nil {
			app.badRequest(w, r, err)
			return
		}

		var v validator.Validator
		validateRequestUpdateTicket(&v, input)
		if v.HasErrors() {
			app.failedValidation(w, r, v)
			return
		}

		dto := storage.UpdateTicketDTO{Status: input.Status}
		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			dto.Title = &title
		}
		if input.Description != nil {
			description := strings.TrimSpace(*input.Description)
			dto.Description = &description
		}

		ticket, err := tickets.Update(ctx, id, dto)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				app.errorMessage(w, r, http.StatusNotFound, "Ticket not found", nil)
				return
			}

			app.serverError(w, r, err)
			return
		}

		if err := response.JSON(w, http.StatusOK, responseTicket{Ticket: ticket}); err != nil {
			app.serverError(w, r, err)
		}

	case http.MethodDelete:
		if err := tickets.Delete(ctx, id); err != nil {
			app.serverError(w, r, err)
			return
		}

		if err := response.JSON(w, http.StatusOK, response.JSONObject{"ok": true}); err != nil {
			app.serverError(w, r, err)
		}

	default:
		app.methodNotAllowed(w, r)
	}
}

// authenticate resolves the bearer token to a session, writing a 401 when the
// token is missing, unknown, or expired.
func (app *application) authenticate(w http.ResponseWriter, r *http.Request) (model.Session, bool) {
	ctx := r.Context()

	sessions := storage.NewSessionDAO(app.requestLogger(ctx), app.store)

	session, err := sessions.Validate(ctx, sessionTokenFromRequest(r))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			app.unauthorized(w, r)
		} else {
			app.serverError(w, r, err)
		}
		return model.Session{}, false
	}

	return session, true
}

func (app *application) requestLogger(ctx context.Context) *slog.Logger {
	return app.logger.With(
		_traceIDKey.String(), ctxstore.MustFrom[string](ctx, _traceIDKey),
	)
}
