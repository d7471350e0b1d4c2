package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AppointmentID string             `bson:"appointment_id" json:"appointment_id"`
	OrderNo       string             `bson:"order_no" json:"order_no"`
	Amount        int64              `bson:"amount" json:"amount"`
	Method        string             `bson:"method,omitempty" json:"method,omitempty"`
	Status        PaymentStatus      `bson:"status" json:"status"`
	RequestedAt   time.Time          `bson:"requested_at" json:"requested_at"`
	// ApprovedAt is set exactly once, when Status becomes COMPLETED.
	ApprovedAt *time.Time `bson:"approved_at,omitempty" json:"approved_at,omitempty"`
}
