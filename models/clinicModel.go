package models

import (
	"strings"
	"time"
)

// Appointment states. Transitions are one-directional: an appointment moves
// forward through scheduled -> confirmed -> completed, or drops out to
// cancelled / no_show before completion.
const (
	AppointmentScheduled = "scheduled"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

// Payment methods accepted for procedures.
const (
	PaymentCash      = "cash"
	PaymentCard      = "card"
	PaymentTransfer  = "transfer"
	PaymentInsurance = "insurance"
)

// Revenue split applied to orthodontic procedures. Fixed business constants,
// not configurable.
const (
	OrthodonticClinicShare = 0.4
	OrthodonticDoctorShare = 0.6
)

// Patient model
type Patient struct {
	PatientID      uint      `gorm:"primaryKey;autoIncrement;column:patient_id" json:"patient_id"`
	FirstName      string    `gorm:"column:first_name;not null" json:"first_name"`
	MiddleName     string    `gorm:"column:middle_name" json:"middle_name"`
	FirstLastName  string    `gorm:"column:first_last_name;not null;index" json:"first_last_name"`
	SecondLastName string    `gorm:"column:second_last_name" json:"second_last_name"`
	Identification string    `gorm:"column:identification;not null;unique;index" json:"identification"`
	NumberPhone    string    `gorm:"column:number_phone" json:"number_phone"`
	Email          string    `gorm:"column:email" json:"email"`
	Profession     string    `gorm:"column:profession" json:"profession"`
	Address        string    `gorm:"column:address" json:"address"`
	Birthdate      string    `gorm:"column:birthdate" json:"birthdate"`
	CreationDate   time.Time `gorm:"column:creation_date;autoCreateTime" json:"creation_date"`

	Appointments []Appointment `gorm:"foreignKey:PatientID;references:PatientID" json:"-"`
	Procedures   []Procedure   `gorm:"foreignKey:PatientID;references:PatientID" json:"-"`
}

func (Patient) TableName() string {
	return "patients"
}

// FullName returns the display name used on flattened reads.
func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.FirstLastName)
}

// Appointment model
type Appointment struct {
	AppointmentID   uint   `gorm:"primaryKey;autoIncrement;column:appointment_id" json:"appointment_id"`
	PatientID       uint   `gorm:"column:patient_id;not null;index" json:"patient_id"`
	AppointmentDate string `gorm:"column:appointment_date;not null;index" json:"appointment_date"`
	QueryType       string `gorm:"column:query_type" json:"query_type"`
	IsOrthodontics  bool   `gorm:"column:is_orthodontics;not null" json:"is_orthodontics"`
	Observations    string `gorm:"column:observations" json:"observations"`
	State           string `gorm:"column:state;check:state IN ('scheduled','confirmed','completed','cancelled','no_show');not null;index" json:"state"`

	Patient *Patient `gorm:"foreignKey:PatientID;references:PatientID" json:"-"`

	// Flattened patient fields, filled on reads, never stored.
	PatientName           string `gorm:"-" json:"patient_name,omitempty"`
	PatientIdentification string `gorm:"-" json:"patient_identification,omitempty"`
	PatientPhone          string `gorm:"-" json:"patient_phone,omitempty"`
	PatientEmail          string `gorm:"-" json:"patient_email,omitempty"`
}

func (Appointment) TableName() string {
	return "clinical_appointments"
}

// Flatten copies the preloaded patient fields into the response-level fields.
func (a *Appointment) Flatten() {
	if a.Patient == nil {
		return
	}
	a.PatientName = a.Patient.FullName()
	a.PatientIdentification = a.Patient.Identification
	a.PatientPhone = a.Patient.NumberPhone
	a.PatientEmail = a.Patient.Email
}

// ValidStateTransition reports whether an appointment may move from one state
// to another. Completed, cancelled and no_show are terminal; cancellation and
// no_show are reachable from any pre-completion state.
func ValidStateTransition(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case AppointmentScheduled:
		return to == AppointmentConfirmed || to == AppointmentCompleted ||
			to == AppointmentCancelled || to == AppointmentNoShow
	case AppointmentConfirmed:
		return to == AppointmentCompleted || to == AppointmentCancelled || to == AppointmentNoShow
	default:
		return false
	}
}

// IsAppointmentState reports whether s is a known appointment state.
func IsAppointmentState(s string) bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted,
		AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

// Procedure model
type Procedure struct {
	ProcedureID          uint      `gorm:"primaryKey;autoIncrement;column:procedure_id" json:"procedure_id"`
	AppointmentID        *uint     `gorm:"column:appointment_id;index" json:"appointment_id"`
	PatientID            uint      `gorm:"column:patient_id;not null;index" json:"patient_id"`
	ProcedureDate        string    `gorm:"column:procedure_date;not null;index" json:"procedure_date"`
	ProcedureDescription string    `gorm:"column:procedure_description;not null" json:"procedure_description"`
	TotalCost            float64   `gorm:"column:total_cost;not null" json:"total_cost"`
	PaymentMethod        string    `gorm:"column:payment_method;check:payment_method IN ('cash','card','transfer','insurance');not null" json:"payment_method"`
	IsOrthodontics       bool      `gorm:"column:is_orthodontics;not null" json:"is_orthodontics"`
	Observations         string    `gorm:"column:observations" json:"observations"`
	CreationDate         time.Time `gorm:"column:creation_date;autoCreateTime" json:"creation_date"`

	Patient     *Patient     `gorm:"foreignKey:PatientID;references:PatientID" json:"-"`
	Appointment *Appointment `gorm:"foreignKey:AppointmentID;references:AppointmentID" json:"-"`

	// Derived, never stored.
	ClinicIncome float64 `gorm:"-" json:"clinic_income"`
	DoctorIncome float64 `gorm:"-" json:"doctor_income"`

	// Flattened fields from the patient and the originating appointment.
	PatientName             string `gorm:"-" json:"patient_name,omitempty"`
	PatientIdentification   string `gorm:"-" json:"patient_identification,omitempty"`
	PatientPhone            string `gorm:"-" json:"patient_phone,omitempty"`
	OriginalQueryType       string `gorm:"-" json:"original_query_type,omitempty"`
	OriginalAppointmentDate string `gorm:"-" json:"original_appointment_date,omitempty"`
}

func (Procedure) TableName() string {
	return "procedures"
}

// ComputeIncome derives the clinic/doctor split from the total cost.
// Orthodontic procedures split 40/60; everything else is clinic income.
func (p *Procedure) ComputeIncome() {
	if p.IsOrthodontics {
		p.ClinicIncome = p.TotalCost * OrthodonticClinicShare
		p.DoctorIncome = p.TotalCost * OrthodonticDoctorShare
		return
	}
	p.ClinicIncome = p.TotalCost
	p.DoctorIncome = 0
}

// Flatten copies the preloaded patient and appointment fields into the
// response-level fields and derives the income split.
func (p *Procedure) Flatten() {
	p.ComputeIncome()
	if p.Patient != nil {
		p.PatientName = p.Patient.FullName()
		p.PatientIdentification = p.Patient.Identification
		p.PatientPhone = p.Patient.NumberPhone
	}
	if p.Appointment != nil {
		p.OriginalQueryType = p.Appointment.QueryType
		p.OriginalAppointmentDate = p.Appointment.AppointmentDate
	}
}

// IsPaymentMethod reports whether s is a known payment method.
func IsPaymentMethod(s string) bool {
	switch s {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentInsurance:
		return true
	}
	return false
}

// Bill model (clinic expense)
type Bill struct {
	BillID      uint    `gorm:"primaryKey;autoIncrement;column:bill_id" json:"bill_id"`
	Description string  `gorm:"column:description;not null" json:"description"`
	Amount      float64 `gorm:"column:amount;not null" json:"amount"`
	Category    string  `gorm:"column:category;check:category IN ('rent','utilities','supplies','salaries','marketing','maintenance','other');not null" json:"category"`
	IsRecurrent bool    `gorm:"column:is_recurrent;not null" json:"is_recurrent"`
	BillDate    string  `gorm:"column:bill_date;not null;index" json:"bill_date"`
}

func (Bill) TableName() string {
	return "bills"
}

// MonthlyClosing model. At most one closing per (month, year).
type MonthlyClosing struct {
	ClosingID                      uint      `gorm:"primaryKey;autoIncrement;column:closing_id" json:"closing_id"`
	Month                          string    `gorm:"column:month;not null;uniqueIndex:idx_month_year" json:"month"`
	Year                           int       `gorm:"column:year;not null;uniqueIndex:idx_month_year" json:"year"`
	TotalGeneralIncome             float64   `gorm:"column:total_general_income" json:"total_general_income"`
	TotalClinicalOrthodonticIncome float64   `gorm:"column:total_clinical_orthodontic_income" json:"total_clinical_orthodontic_income"`
	TotalOrthodonticDoctorIncome   float64   `gorm:"column:total_orthodontic_doctor_income" json:"total_orthodontic_doctor_income"`
	TotalFixedExpenses             float64   `gorm:"column:total_fixed_expenses" json:"total_fixed_expenses"`
	TotalVariableExpenses          float64   `gorm:"column:total_variable_expenses" json:"total_variable_expenses"`
	NetProfit                      float64   `gorm:"column:net_profit" json:"net_profit"`
	Comment                        string    `gorm:"column:comment" json:"comment"`
	ClosingDate                    time.Time `gorm:"column:closing_date;autoCreateTime" json:"closing_date"`
}

func (MonthlyClosing) TableName() string {
	return "monthly_closings"
}

// IncomeStats aggregates procedure income over a date range.
type IncomeStats struct {
	TotalIncome        float64 `json:"total_income"`
	GeneralIncome      float64 `json:"general_income"`
	OrthodonticsIncome float64 `json:"orthodontics_income"`
	ClinicIncome       float64 `json:"clinic_income"`
	DoctorIncome       float64 `json:"doctor_income"`
	TotalProcedures    int     `json:"total_procedures"`
	OrthodonticsCount  int     `json:"orthodontics_count"`
	GeneralCount       int     `json:"general_count"`
}

// ExpenseStats aggregates bills over a date range, split by recurrence.
type ExpenseStats struct {
	TotalExpenses    float64 `json:"total_expenses"`
	FixedExpenses    float64 `json:"fixed_expenses"`
	VariableExpenses float64 `json:"variable_expenses"`
	TotalBills       int     `json:"total_bills"`
	FixedCount       int     `json:"fixed_count"`
	VariableCount    int     `json:"variable_count"`
}

// FinancialSummary composes income and expense statistics for a period.
type FinancialSummary struct {
	TotalGeneralIncome             float64 `json:"total_general_income"`
	TotalClinicalOrthodonticIncome float64 `json:"total_clinical_orthodontic_income"`
	TotalOrthodonticDoctorIncome   float64 `json:"total_orthodontic_doctor_income"`
	TotalFixedExpenses             float64 `json:"total_fixed_expenses"`
	TotalVariableExpenses          float64 `json:"total_variable_expenses"`
	NetProfit                      float64 `json:"net_profit"`
}
