package main

import (
	"github.com/HackhimTech/ticketapp/internal/model"
	"github.com/HackhimTech/ticketapp/internal/validator"
)

// Validation rules

func validateRequestLogin(v *validator.Validator, request requestLogin) {
	v.Check(validator.NotBlank(request.Username) && validator.NotBlank(request.Password),
		"Username and password required")
}

func validateRequestSignup(v *validator.Validator, request requestSignup) {
	v.Check(validator.NotBlank(request.Username) && validator.NotBlank(request.Password) && validator.NotBlank(request.Name),
		"Name, username and password required")
}

func validateRequestCreateTicket(v *validator.Validator, request requestCreateTicket) {
	v.Check(validator.NotBlank(request.Title), "Title is required")
	validateTicketStatus(v, request.Status)
}

func validateRequestUpdateTicket(v *validator.Validator, request requestUpdateTicket) {
	if request.Status != nil {
		validateTicketStatus(v, *request.Status)
	}
	if request.Title != nil {
		v.Check(validator.NotBlank(*request.Title), "Title cannot be empty")
	}
}

func validateTicketStatus(v *validator.Validator, status model.Status) {
	v.Check(
		validator.In(status, model.StatusOpen, model.StatusInProgress, model.StatusClosed),
		"Invalid status",
	)
}
