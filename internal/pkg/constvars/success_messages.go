package constvars

const (
	UserRegisteredSuccess = "User registered successfully"
	LoginSuccess          = "Logged in successfully"
	LogoutSuccess         = "Logged out successfully"

	AppointmentBookedSuccess    = "Appointment booked successfully"
	AppointmentPricedSuccess    = "Appointment price set, awaiting payment"
	AppointmentCancelledSuccess = "Appointment cancelled successfully"
	AppointmentCompletedSuccess = "Appointment completed successfully"
	AppointmentFetchedSuccess   = "Appointments fetched successfully"

	PaymentLinkCreatedSuccess = "Payment link created successfully"
	PaymentFetchedSuccess     = "Payment fetched successfully"

	NotificationFetchedSuccess  = "Notifications fetched successfully"
	NotificationPolledSuccess   = "New notifications fetched successfully"
	NotificationMarkReadSuccess = "Notification marked as read"

	ReservationCreatedSuccess   = "Vaccination reservation created successfully"
	ReservationConfirmedSuccess = "Vaccination reservation confirmed"
	ReservationCancelledSuccess = "Vaccination reservation cancelled"
	ReservationFetchedSuccess   = "Vaccination reservations fetched successfully"

	PrescriptionCreatedSuccess = "Prescription issued successfully"
	PrescriptionFetchedSuccess = "Prescriptions fetched successfully"
)
