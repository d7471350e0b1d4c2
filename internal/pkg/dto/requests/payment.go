package requests

// CreatePaymentLink asks for a redirect URL to the mock gateway for one
// appointment. The caller must own the appointment.
type CreatePaymentLink struct {
	AppointmentID string `json:"appointment_id" validate:"required"`
	Method        string `json:"method,omitempty"`
}

// PaymentCallback is the inbound confirmation from the gateway. Two encodings
// arrive in the wild: a JSON body with appointment_id and result, and the
// gateway's legacy form fields (ORDERNO, RESULT).
type PaymentCallback struct {
	AppointmentID string `json:"appointmentId"`
	Result        string `json:"result"`
	OrderNo       string `json:"-"`
}
