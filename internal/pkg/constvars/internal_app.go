package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY ContextKey = "request_id"
	CONTEXT_SESSION_KEY    ContextKey = "session"
)

const (
	MongoCollectionUsers         = "users"
	MongoCollectionAppointments  = "appointments"
	MongoCollectionPayments      = "payments"
	MongoCollectionNotifications = "notifications"
	MongoCollectionVaccinations  = "vaccination_reservations"
	MongoCollectionPrescriptions = "prescriptions"
)

const (
	RedisNotificationKnownSetFormat = "notifications:known:%s"
	RedisNotificationWorkerLockKey  = "notifications:worker:lock"
)

const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)
