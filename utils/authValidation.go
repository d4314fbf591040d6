package utils

import (
	"CareUSmile/models"
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
)

// ValidateUserData validates user data using ozzo-validation.
func ValidateUserData(user models.User) error {
	return validation.ValidateStruct(&user,
		validation.Field(&user.Name, validation.Required, validation.Length(3, 100)),
		validation.Field(&user.Email, validation.Required, is.Email),
		validation.Field(&user.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
		validation.Field(&user.UserType, validation.Required, validation.In(models.UserTypeAdmin, models.UserTypeUser)),
	)
}

// ValidatePasswordReset validates the reset code and new password.
func ValidatePasswordReset(resetCode, newPassword string) error {
	return validation.Errors{
		"resetCode": validation.Validate(resetCode, validation.Required.Error("invalid reset code")),
		"password":  validation.Validate(newPassword, validation.Required, validation.By(validatePassword)),
	}.Filter()
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	var (
		lowercaseRegex = regexp.MustCompile(`[a-z]`)
		uppercaseRegex = regexp.MustCompile(`[A-Z]`)
		digitRegex     = regexp.MustCompile(`\d`)
		specialRegex   = regexp.MustCompile(`[@$!%*?&]`)
	)

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}

	return nil
}

// ValidatePatientData validates a patient payload, reporting every violated
// field at once.
func ValidatePatientData(patient models.Patient) error {
	return validation.ValidateStruct(&patient,
		validation.Field(&patient.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&patient.FirstLastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&patient.Identification, validation.Required, validation.Length(1, 50)),
		validation.Field(&patient.NumberPhone, validation.Match(regexp.MustCompile(`^[0-9+\-\s]*$`))),
		validation.Field(&patient.Email, validation.When(patient.Email != "", is.Email)),
	)
}

// ValidateAppointmentData validates an appointment payload.
func ValidateAppointmentData(appointment models.Appointment) error {
	return validation.ValidateStruct(&appointment,
		validation.Field(&appointment.PatientID, validation.Required),
		validation.Field(&appointment.AppointmentDate, validation.Required),
		validation.Field(&appointment.State, validation.When(appointment.State != "", validation.In(
			models.AppointmentScheduled,
			models.AppointmentConfirmed,
			models.AppointmentCompleted,
			models.AppointmentCancelled,
			models.AppointmentNoShow,
		))),
	)
}

// ValidateProcedureData validates a full procedure payload (direct creation).
func ValidateProcedureData(procedure models.Procedure) error {
	return validation.ValidateStruct(&procedure,
		validation.Field(&procedure.PatientID, validation.Required),
		validation.Field(&procedure.ProcedureDate, validation.Required),
		validation.Field(&procedure.ProcedureDescription, validation.Required),
		validation.Field(&procedure.TotalCost, validation.Required, validation.Min(0.01)),
		validation.Field(&procedure.PaymentMethod, validation.Required, validation.In(
			models.PaymentCash,
			models.PaymentCard,
			models.PaymentTransfer,
			models.PaymentInsurance,
		)),
	)
}

// ValidateConversionData validates the procedure fields submitted when
// converting a completed appointment. Patient and date come from the
// appointment, so only the billable fields are required.
func ValidateConversionData(procedure models.Procedure) error {
	return validation.ValidateStruct(&procedure,
		validation.Field(&procedure.ProcedureDescription, validation.Required),
		validation.Field(&procedure.TotalCost, validation.Required, validation.Min(0.01)),
		validation.Field(&procedure.PaymentMethod, validation.Required, validation.In(
			models.PaymentCash,
			models.PaymentCard,
			models.PaymentTransfer,
			models.PaymentInsurance,
		)),
	)
}

// ValidateBillData validates a bill payload.
func ValidateBillData(bill models.Bill) error {
	return validation.ValidateStruct(&bill,
		validation.Field(&bill.Description, validation.Required),
		validation.Field(&bill.Amount, validation.Required, validation.Min(0.01)),
		validation.Field(&bill.Category, validation.Required, validation.In(
			"rent", "utilities", "supplies", "salaries", "marketing", "maintenance", "other",
		)),
		validation.Field(&bill.BillDate, validation.Required),
	)
}

// ValidateClosingRequest validates the month/year pair of a closing request.
func ValidateClosingRequest(month string, year int) error {
	return validation.Errors{
		"month": validation.Validate(month, validation.Required, validation.In(
			"ENERO", "FEBRERO", "MARZO", "ABRIL", "MAYO", "JUNIO",
			"JULIO", "AGOSTO", "SEPTIEMBRE", "OCTUBRE", "NOVIEMBRE", "DICIEMBRE",
		)),
		"year": validation.Validate(year, validation.Required, validation.Min(2000), validation.Max(2100)),
	}.Filter()
}
