package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Minio    Minio
		SMTP     SMTP
		Logger   Logger
	}

	InternalConfig struct {
		App            App
		JWT            JWT
		PaymentGateway PaymentGateway
		Notification   Notification
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Timezone                   string
		EndpointPrefix             string
		MaxRequests                int
		ShutdownTimeout            int
		CallbackRatePerMinute      int
		CallbackBlockTimeInMinutes int
		AttachmentMaxSizeInMB      int64
	}

	MongoDB struct {
		Host     string
		Port     string
		DbName   string
		Username string
		Password string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}

	Minio struct {
		Host       string
		Port       string
		Username   string
		Password   string
		BucketName string
		UseSSL     bool
	}

	SMTP struct {
		Host        string
		Port        int
		Username    string
		Password    string
		EmailSender string
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	JWT struct {
		Secret        string
		ExpTimeInHour int
	}

	// PaymentGateway is injected into the gateway adapter at construction;
	// nothing reads these values from the process environment afterwards.
	PaymentGateway struct {
		MerchantID           string
		SecretKey            string
		HashServiceURL       string
		GatewayBaseURL       string
		ReturnURL            string
		ProductName          string
		HashTimeoutInSeconds int
	}

	Notification struct {
		QueueName            string
		DeadLetterQueueName  string
		WorkerTickInSeconds  int
		WorkerPrefetch       int
		MaxDeliveryFailures  int
		KnownSetTTLInHours   int
		EmailSubjectTemplate string
	}
)
