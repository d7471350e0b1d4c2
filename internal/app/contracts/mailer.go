package contracts

import "context"

type MailerService interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}
