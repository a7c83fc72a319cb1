package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrBusy     = errors.New("another action is in progress")
	ErrNoRiddle = errors.New("no riddle is displayed")

	// Input validation errors
	ErrNameRequired   = errors.New("name is required")
	ErrAnswerRequired = errors.New("answer is required")
)
