package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingEndpointKey       = "endpoint"
	LoggingMethodKey         = "method"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingOperationKey      = "operation"
	LoggingErrorTypeKey      = "error_type"
	LoggingRequestKey        = "request"
	LoggingResponseKey       = "response"
	LoggingSessionIDKey      = "session_id"
	LoggingUserIDKey         = "user_id"
	LoggingAppointmentIDKey  = "appointment_id"
	LoggingPaymentIDKey      = "payment_id"
	LoggingOrderNoKey        = "order_no"
	LoggingNotificationIDKey = "notification_id"
	LoggingReservationIDKey  = "reservation_id"
	LoggingPrescriptionIDKey = "prescription_id"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingQueueKey          = "queue"
	LoggingStatusKey         = "status"
)
