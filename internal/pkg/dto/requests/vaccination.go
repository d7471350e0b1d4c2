package requests

type ReserveVaccination struct {
	VaccineName string `json:"vaccine_name" validate:"required,max=100"`
	ScheduledAt string `json:"scheduled_at" validate:"required"`
}
