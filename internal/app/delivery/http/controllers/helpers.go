package controllers

import (
	"context"

	"teleclinic-service/internal/app/models"
	"teleclinic-service/internal/pkg/constvars"
	"teleclinic-service/internal/pkg/exceptions"
)

const (
	requestTimeout = 10
	logoutTimeout  = 3
)

func sessionFromContext(ctx context.Context) (*models.Session, error) {
	session, ok := ctx.Value(constvars.CONTEXT_SESSION_KEY).(*models.Session)
	if !ok || session == nil {
		return nil, exceptions.ErrSessionInvalid(nil)
	}
	return session, nil
}
