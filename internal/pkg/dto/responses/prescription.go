package responses

import "time"

type Prescription struct {
	ID            string           `json:"id"`
	PatientID     string           `json:"patient_id"`
	DoctorID      string           `json:"doctor_id"`
	AppointmentID string           `json:"appointment_id,omitempty"`
	Medications   []MedicationItem `json:"medications"`
	Notes         string           `json:"notes,omitempty"`
	AttachmentURL string           `json:"attachment_url,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

type MedicationItem struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Duration string `json:"duration,omitempty"`
}
