package config

import (
	"teleclinic-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "teleclinic"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "prescriptions"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		SMTP: SMTP{
			Host:        utils.GetEnvString("SMTP_HOST", "localhost"),
			Port:        utils.GetEnvInt("SMTP_PORT", 2525),
			Username:    utils.GetEnvString("SMTP_USERNAME", ""),
			Password:    utils.GetEnvString("SMTP_PASSWORD", ""),
			EmailSender: utils.GetEnvString("SMTP_EMAIL_SENDER", "no-reply@teleclinic.local"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Seoul"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeout:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			CallbackRatePerMinute:      utils.GetEnvInt("APP_CALLBACK_RATE_PER_MINUTE", 30),
			CallbackBlockTimeInMinutes: utils.GetEnvInt("APP_CALLBACK_BLOCK_TIME_IN_MINUTES", 5),
			AttachmentMaxSizeInMB:      utils.GetEnvInt64("APP_ATTACHMENT_MAX_SIZE_IN_MB", 5),
		},
		JWT: JWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 1),
		},
		PaymentGateway: PaymentGateway{
			MerchantID:           utils.GetEnvString("PAYMENT_GATEWAY_MERCHANT_ID", "CP0001"),
			SecretKey:            utils.GetEnvString("PAYMENT_GATEWAY_SECRET_KEY", "defaultSecret"),
			HashServiceURL:       utils.GetEnvString("PAYMENT_GATEWAY_HASH_SERVICE_URL", ""),
			GatewayBaseURL:       utils.GetEnvString("PAYMENT_GATEWAY_BASE_URL", "https://pay.example.com/checkout"),
			ReturnURL:            utils.GetEnvString("PAYMENT_GATEWAY_RETURN_URL", "http://localhost:8080/api/v1/payments/callback"),
			ProductName:          utils.GetEnvString("PAYMENT_GATEWAY_PRODUCT_NAME", "Teleclinic Consultation"),
			HashTimeoutInSeconds: utils.GetEnvInt("PAYMENT_GATEWAY_HASH_TIMEOUT_IN_SECONDS", 5),
		},
		Notification: Notification{
			QueueName:            utils.GetEnvString("NOTIFICATION_QUEUE_NAME", "notification_delivery_queue"),
			DeadLetterQueueName:  utils.GetEnvString("NOTIFICATION_DLQ_NAME", "notification_delivery_dlq"),
			WorkerTickInSeconds:  utils.GetEnvInt("NOTIFICATION_WORKER_TICK_IN_SECONDS", 30),
			WorkerPrefetch:       utils.GetEnvInt("NOTIFICATION_WORKER_PREFETCH", 10),
			MaxDeliveryFailures:  utils.GetEnvInt("NOTIFICATION_MAX_DELIVERY_FAILURES", 3),
			KnownSetTTLInHours:   utils.GetEnvInt("NOTIFICATION_KNOWN_SET_TTL_IN_HOURS", 24),
			EmailSubjectTemplate: utils.GetEnvString("NOTIFICATION_EMAIL_SUBJECT_TEMPLATE", "[Teleclinic] %s"),
		},
	}
}
