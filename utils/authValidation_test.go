package utils

import (
	"CareUSmile/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePatientData(t *testing.T) {
	valid := models.Patient{
		FirstName:      "Ana",
		FirstLastName:  "Mora",
		Identification: "1-1111-1111",
		NumberPhone:    "8888-8888",
		Email:          "ana@example.com",
	}
	assert.NoError(t, ValidatePatientData(valid))

	missingName := valid
	missingName.FirstName = ""
	assert.Error(t, ValidatePatientData(missingName))

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, ValidatePatientData(badEmail))

	// Email is optional.
	noEmail := valid
	noEmail.Email = ""
	assert.NoError(t, ValidatePatientData(noEmail))

	badPhone := valid
	badPhone.NumberPhone = "phone!"
	assert.Error(t, ValidatePatientData(badPhone))
}

func TestValidateAppointmentData(t *testing.T) {
	valid := models.Appointment{PatientID: 1, AppointmentDate: "2026-03-10T09:00:00"}
	assert.NoError(t, ValidateAppointmentData(valid))

	noPatient := valid
	noPatient.PatientID = 0
	assert.Error(t, ValidateAppointmentData(noPatient))

	badState := valid
	badState.State = "pending"
	assert.Error(t, ValidateAppointmentData(badState))

	validState := valid
	validState.State = models.AppointmentConfirmed
	assert.NoError(t, ValidateAppointmentData(validState))
}

func TestValidateConversionData(t *testing.T) {
	valid := models.Procedure{
		ProcedureDescription: "Limpieza profunda",
		TotalCost:            150,
		PaymentMethod:        models.PaymentCash,
	}
	assert.NoError(t, ValidateConversionData(valid))

	zeroCost := valid
	zeroCost.TotalCost = 0
	assert.Error(t, ValidateConversionData(zeroCost))

	badMethod := valid
	badMethod.PaymentMethod = "barter"
	assert.Error(t, ValidateConversionData(badMethod))

	// Patient and date are copied from the appointment, so their absence is
	// fine here.
	assert.NoError(t, ValidateConversionData(models.Procedure{
		ProcedureDescription: "Control",
		TotalCost:            50,
		PaymentMethod:        models.PaymentCard,
	}))
}

func TestValidateProcedureDataRequiresPatient(t *testing.T) {
	procedure := models.Procedure{
		ProcedureDescription: "Limpieza",
		TotalCost:            100,
		PaymentMethod:        models.PaymentCash,
	}
	assert.Error(t, ValidateProcedureData(procedure))

	procedure.PatientID = 1
	procedure.ProcedureDate = "2026-03-10T09:00:00"
	assert.NoError(t, ValidateProcedureData(procedure))
}

func TestValidateBillData(t *testing.T) {
	valid := models.Bill{
		Description: "Alquiler",
		Amount:      1000,
		Category:    "rent",
		BillDate:    "2026-03-01",
	}
	assert.NoError(t, ValidateBillData(valid))

	badCategory := valid
	badCategory.Category = "misc"
	assert.Error(t, ValidateBillData(badCategory))

	zeroAmount := valid
	zeroAmount.Amount = 0
	assert.Error(t, ValidateBillData(zeroAmount))
}

func TestValidateClosingRequest(t *testing.T) {
	assert.NoError(t, ValidateClosingRequest("MARZO", 2026))
	assert.Error(t, ValidateClosingRequest("MARCH", 2026))
	assert.Error(t, ValidateClosingRequest("", 2026))
	assert.Error(t, ValidateClosingRequest("MARZO", 1999))
	assert.Error(t, ValidateClosingRequest("MARZO", 2200))
}

func TestValidateUserData(t *testing.T) {
	valid := models.User{
		Name:     "Dra. Mora",
		Email:    "doctora@example.com",
		Password: "Secreta1!",
		UserType: models.UserTypeAdmin,
	}
	assert.NoError(t, ValidateUserData(valid))

	weak := valid
	weak.Password = "secreta"
	assert.Error(t, ValidateUserData(weak))

	badType := valid
	badType.UserType = "ROOT"
	assert.Error(t, ValidateUserData(badType))
}
