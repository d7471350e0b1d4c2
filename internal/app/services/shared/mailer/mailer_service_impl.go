package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"teleclinic-service/internal/app/contracts"
	"teleclinic-service/internal/app/drivers/mailer"
	"teleclinic-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

const emailMessageFormat = "From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s\r\n"

type mailerService struct {
	Client *mailer.SMTPClient
	Log    *zap.Logger
}

func NewMailerService(client *mailer.SMTPClient, logger *zap.Logger) contracts.MailerService {
	return &mailerService{
		Client: client,
		Log:    logger,
	}
}

func (s *mailerService) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return exceptions.ErrMailerSend(err)
	}

	from := s.Client.EmailSender
	msg := []byte(fmt.Sprintf(emailMessageFormat, from, to, subject, body))
	addr := fmt.Sprintf("%s:%d", s.Client.Host, s.Client.Port)

	if err := smtp.SendMail(addr, s.Client.Auth, from, []string{to}, msg); err != nil {
		s.Log.Error("mailerService.SendEmail error sending email",
			zap.String("to", to),
			zap.Error(err),
		)
		return exceptions.ErrMailerSend(err)
	}
	return nil
}
