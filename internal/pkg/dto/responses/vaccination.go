package responses

import "time"

type VaccinationReservation struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"`
	VaccineName string    `json:"vaccine_name"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
