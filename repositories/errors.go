package repositories

import "errors"

// Sentinel errors distinguishing business failures from storage failures.
// Handlers map these to 400/404 responses; anything else is a 500.
var (
	ErrPatientNotFound         = errors.New("patient not found")
	ErrPatientHasAppointments  = errors.New("patient has associated appointments")
	ErrDuplicateIdentification = errors.New("a patient with this identification already exists")
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrAppointmentNotCompleted = errors.New("only completed appointments can be converted to procedures")
	ErrInvalidStateTransition  = errors.New("invalid appointment state transition")
	ErrProcedureNotFound       = errors.New("procedure not found")
	ErrBillNotFound            = errors.New("bill not found")
	ErrClosingNotFound         = errors.New("monthly closing not found")
	ErrClosingExists           = errors.New("a closing already exists for this month and year")
)
