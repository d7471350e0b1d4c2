package requests

type BookAppointment struct {
	DoctorID  string `json:"doctor_id" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
}

type SetAppointmentPrice struct {
	AppointmentID string `json:"-"`
	Price         int64  `json:"price" validate:"required,gt=0"`
}
