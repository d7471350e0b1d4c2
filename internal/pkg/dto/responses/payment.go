package responses

import "time"

type PaymentLink struct {
	OrderNo    string `json:"order_no"`
	PaymentURL string `json:"payment_url"`
}

type Payment struct {
	ID            string     `json:"id"`
	AppointmentID string     `json:"appointment_id"`
	OrderNo       string     `json:"order_no"`
	Amount        int64      `json:"amount"`
	Method        string     `json:"method,omitempty"`
	Status        string     `json:"status"`
	RequestedAt   time.Time  `json:"requested_at"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
}
