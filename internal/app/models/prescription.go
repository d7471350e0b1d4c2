package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MedicationItem struct {
	Name     string `bson:"name" json:"name"`
	Dosage   string `bson:"dosage" json:"dosage"`
	Duration string `bson:"duration,omitempty" json:"duration,omitempty"`
}

type Prescription struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientID            string             `bson:"patient_id" json:"patient_id"`
	DoctorID             string             `bson:"doctor_id" json:"doctor_id"`
	AppointmentID        string             `bson:"appointment_id,omitempty" json:"appointment_id,omitempty"`
	Medications          []MedicationItem   `bson:"medications" json:"medications"`
	Notes                string             `bson:"notes,omitempty" json:"notes,omitempty"`
	AttachmentObjectName string             `bson:"attachment_object_name,omitempty" json:"-"`
	CreatedAt            time.Time          `bson:"created_at" json:"created_at"`
}
