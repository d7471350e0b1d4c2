package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// VaccinationReservation has a flat lifecycle without a price gate; it never
// touches the payment entity.
type VaccinationReservation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientID   string             `bson:"patient_id" json:"patient_id"`
	VaccineName string             `bson:"vaccine_name" json:"vaccine_name"`
	ScheduledAt time.Time          `bson:"scheduled_at" json:"scheduled_at"`
	Status      ReservationStatus  `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
