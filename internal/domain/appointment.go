package domain

import "time"

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "Pending"
	AppointmentStatusConfirmed AppointmentStatus = "Confirmed"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
)

// Valid reports whether s is a member of the closed status set.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCompleted:
		return true
	}
	return false
}

type Appointment struct {
	ID             string
	FullName       string
	MobileNumber   string
	EmailAddress   string
	Department     string
	DoctorName     string
	ReasonForVisit string
	Status         AppointmentStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
