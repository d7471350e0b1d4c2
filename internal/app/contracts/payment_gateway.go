package contracts

import (
	"context"
	"time"
)

// PaymentLinkInput carries the order metadata signed into the redirect URL.
type PaymentLinkInput struct {
	OrderNo     string
	Amount      int64
	ProductName string
	BuyerName   string
	BuyerEmail  string
	Timestamp   time.Time
}

type PaymentGatewayService interface {
	BuildPaymentLink(ctx context.Context, input *PaymentLinkInput) (string, error)
}
