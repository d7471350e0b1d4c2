package middlewares

import (
	"teleclinic-service/internal/app/config"
	"teleclinic-service/internal/app/contracts"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log             *zap.Logger
	RedisRepository contracts.RedisRepository
	InternalConfig  *config.InternalConfig
}

func New(log *zap.Logger, redisRepository contracts.RedisRepository, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:             log,
		RedisRepository: redisRepository,
		InternalConfig:  internalConfig,
	}
}
