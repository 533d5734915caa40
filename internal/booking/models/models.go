package models

import "time"

// AppointmentType classifies the visit.
type AppointmentType string

const (
	TypeConsultation       AppointmentType = "consultation"
	TypeFollowUp           AppointmentType = "follow-up"
	TypeEmergency          AppointmentType = "emergency"
	TypeRoutineCheckup     AppointmentType = "routine-checkup"
	TypeSpecialistReferral AppointmentType = "specialist-referral"
)

// TypeStrings lists the supported appointment types for enum membership
// checks.
func TypeStrings() []string {
	return []string{
		string(TypeConsultation),
		string(TypeFollowUp),
		string(TypeEmergency),
		string(TypeRoutineCheckup),
		string(TypeSpecialistReferral),
	}
}

// AppointmentMode says how the visit is delivered. Optional on creation.
type AppointmentMode string

const (
	ModeInPerson     AppointmentMode = "in-person"
	ModeTelemedicine AppointmentMode = "telemedicine"
	ModePhone        AppointmentMode = "phone"
)

func ModeStrings() []string {
	return []string{string(ModeInPerson), string(ModeTelemedicine), string(ModePhone)}
}

// AppointmentPriority is the triage level. Optional on creation.
type AppointmentPriority string

const (
	PriorityLow    AppointmentPriority = "low"
	PriorityMedium AppointmentPriority = "medium"
	PriorityHigh   AppointmentPriority = "high"
	PriorityUrgent AppointmentPriority = "urgent"
)

func PriorityStrings() []string {
	return []string{
		string(PriorityLow),
		string(PriorityMedium),
		string(PriorityHigh),
		string(PriorityUrgent),
	}
}

// AppointmentStatus tracks the booking lifecycle.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

func StatusStrings() []string {
	return []string{
		string(StatusScheduled),
		string(StatusConfirmed),
		string(StatusCompleted),
		string(StatusCancelled),
	}
}

// Appointment is the stored booking record.
type Appointment struct {
	ID             string              `json:"id"`
	PatientID      string              `json:"patientId"`
	DoctorID       string              `json:"doctorId"`
	Date           string              `json:"appointmentDate"`
	StartTime      string              `json:"startTime"`
	EndTime        string              `json:"endTime"`
	Type           AppointmentType     `json:"type"`
	Mode           AppointmentMode     `json:"mode,omitempty"`
	Priority       AppointmentPriority `json:"priority,omitempty"`
	ChiefComplaint string              `json:"chiefComplaint"`
	Status         AppointmentStatus   `json:"status"`
	Rating         *int                `json:"rating,omitempty"`
	Feedback       string              `json:"feedback,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
}
