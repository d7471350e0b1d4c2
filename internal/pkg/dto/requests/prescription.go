package requests

type MedicationItem struct {
	Name     string `json:"name" validate:"required"`
	Dosage   string `json:"dosage" validate:"required"`
	Duration string `json:"duration,omitempty"`
}

type CreatePrescription struct {
	PatientID      string           `json:"patient_id" validate:"required"`
	AppointmentID  string           `json:"appointment_id,omitempty"`
	Medications    []MedicationItem `json:"medications" validate:"required,min=1,dive"`
	Notes          string           `json:"notes,omitempty"`
	Attachment     []byte           `json:"-"`
	AttachmentName string           `json:"-"`
	AttachmentType string           `json:"-"`
}
