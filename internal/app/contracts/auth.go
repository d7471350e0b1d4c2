package contracts

import (
	"context"

	"teleclinic-service/internal/pkg/dto/requests"
	"teleclinic-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	Register(ctx context.Context, request *requests.RegisterUser) (*responses.RegisterUser, error)
	Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error)
	Logout(ctx context.Context, sessionID string) error
}
