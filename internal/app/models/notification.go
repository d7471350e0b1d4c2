package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationPaymentRequired      NotificationType = "PAYMENT_REQUIRED"
	NotificationPaymentConfirmed     NotificationType = "PAYMENT_CONFIRMED"
	NotificationPaymentCancelled     NotificationType = "PAYMENT_CANCELLED"
	NotificationAppointmentConfirmed NotificationType = "APPOINTMENT_CONFIRMED"
	NotificationAppointmentCompleted NotificationType = "APPOINTMENT_COMPLETED"
	NotificationAppointmentCancelled NotificationType = "APPOINTMENT_CANCELLED"
	NotificationVaccinationConfirmed NotificationType = "VACCINATION_CONFIRMED"
	NotificationVaccinationCancelled NotificationType = "VACCINATION_CANCELLED"
	NotificationMeetReady            NotificationType = "MEET_READY"
	NotificationPrescriptionIssued   NotificationType = "PRESCRIPTION_ISSUED"
)

type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID string             `bson:"recipient_id" json:"recipient_id"`
	Type        NotificationType   `bson:"type" json:"type"`
	Message     string             `bson:"message" json:"message"`
	Link        string             `bson:"link,omitempty" json:"link,omitempty"`
	Read        bool               `bson:"read" json:"read"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
