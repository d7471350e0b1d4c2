package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppointmentStatus string

const (
	AppointmentPending         AppointmentStatus = "PENDING"
	AppointmentAwaitingPayment AppointmentStatus = "AWAITING_PAYMENT"
	AppointmentConfirmed       AppointmentStatus = "CONFIRMED"
	AppointmentCompleted       AppointmentStatus = "COMPLETED"
	AppointmentCancelled       AppointmentStatus = "CANCELLED"
)

// Terminal reports whether no further transition may leave the status.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentCompleted || s == AppointmentCancelled
}

// CanTransitionTo enforces the lifecycle edges:
// PENDING -> AWAITING_PAYMENT -> CONFIRMED -> COMPLETED, and CANCELLED from
// any non-terminal state. Repricing keeps AWAITING_PAYMENT reachable from
// itself so an admin can correct a price before payment.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch next {
	case AppointmentAwaitingPayment:
		return s == AppointmentPending || s == AppointmentAwaitingPayment
	case AppointmentConfirmed:
		return s == AppointmentAwaitingPayment
	case AppointmentCompleted:
		return s == AppointmentConfirmed
	case AppointmentCancelled:
		return !s.Terminal()
	default:
		return false
	}
}

// StatusesAllowing lists the statuses from which next is reachable, in
// lifecycle order. Conditional repository updates use it as their
// expected-status filter so the edge set is defined in one place.
func StatusesAllowing(next AppointmentStatus) []AppointmentStatus {
	lifecycle := []AppointmentStatus{
		AppointmentPending,
		AppointmentAwaitingPayment,
		AppointmentConfirmed,
		AppointmentCompleted,
		AppointmentCancelled,
	}
	var sources []AppointmentStatus
	for _, status := range lifecycle {
		if status.CanTransitionTo(next) {
			sources = append(sources, status)
		}
	}
	return sources
}

type Appointment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientID string             `bson:"patient_id" json:"patient_id"`
	DoctorID  string             `bson:"doctor_id" json:"doctor_id"`
	StartTime time.Time          `bson:"start_time" json:"start_time"`
	Price     *int64             `bson:"price,omitempty" json:"price,omitempty"`
	Status    AppointmentStatus  `bson:"status" json:"status"`
	Version   int64              `bson:"version" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
