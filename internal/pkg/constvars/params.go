package constvars

const (
	URLParamAppointmentID  = "appointmentID"
	URLParamNotificationID = "notificationID"
	URLParamReservationID  = "reservationID"
	URLParamPrescriptionID = "prescriptionID"
)
