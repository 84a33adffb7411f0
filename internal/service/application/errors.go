package application

import "errors"

// Sentinel errors for the submission pipeline.
var (
	ErrPersist          = errors.New("application could not be saved")
	ErrRender           = errors.New("application document could not be generated")
	ErrAlreadyPersisted = errors.New("application already has an id")
)

// Warnings attached to a successful submission.
const (
	WarningNoEmail  = "Your application was saved, but no email address was provided for the confirmation."
	WarningDelivery = "Your application was saved, but we encountered an issue sending the confirmation email."
	WarningDocument = "Your application was saved, but we could not generate the application document."
)

// StageError is a hard failure. It reports the underlying cause as its
// message and matches the stage sentinel with errors.Is.
type StageError struct {
	Stage error
	Err   error
}

func (e *StageError) Error() string { return e.Err.Error() }

func (e *StageError) Unwrap() []error { return []error{e.Stage, e.Err} }
