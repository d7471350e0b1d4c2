package constvars

// Client-facing messages. Kept generic on purpose; the detail lives in the
// dev message and the logs.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process the request, please check your input"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "You are not logged in, please login first"
	ErrClientServerLongRespond             = "Server took too long to respond, please try again"
	ErrClientInvalidUsernameOrPassword     = "Invalid username or password"
	ErrClientPasswordsDoNotMatch           = "Passwords do not match"
	ErrClientEmailAlreadyExists            = "Email is already registered"
	ErrClientUsernameAlreadyExists         = "Username is already taken"
	ErrClientAppointmentNotFound           = "Appointment not found"
	ErrClientAppointmentNotPriced          = "Appointment has no price set yet"
	ErrClientAppointmentStateConflict      = "Appointment is not in a state that allows this action"
	ErrClientPaymentNotFound               = "Payment not found"
	ErrClientReservationNotFound           = "Vaccination reservation not found"
	ErrClientReservationStateConflict      = "Vaccination reservation is not in a state that allows this action"
	ErrClientNotificationNotFound          = "Notification not found"
	ErrClientPrescriptionNotFound          = "Prescription not found"
	ErrClientPriceMustBePositive           = "Price must be greater than zero"
	ErrClientPaymentGatewayUnavailable     = "Payment service is currently unavailable, please try again later"
	ErrClientInvalidCallbackPayload        = "Invalid payment callback payload"
	ErrClientAttachmentTooLarge            = "Attachment exceeds the maximum upload size"
)

// Dev messages; surfaced only outside production.
const (
	ErrDevCannotParseJSON            = "Failed to parse JSON request body"
	ErrDevCannotParseForm            = "Failed to parse form-encoded request body"
	ErrDevCannotParseMultipartForm   = "Failed to parse multipart form"
	ErrDevCannotMarshalJSON          = "Failed to marshal JSON"
	ErrDevValidationFailed           = "Request validation failed"
	ErrDevURLParamIDValidationFailed = "URL parameter %s failed validation"
	ErrDevServerDeadlineExceeded     = "Server deadline exceeded"
	ErrDevInvalidTimeFormat          = "Time value is not valid RFC3339"
	ErrDevInvalidCredentials         = "Invalid credentials supplied"
	ErrDevPasswordsDoNotMatch        = "Password and retype password do not match"
	ErrDevEmailAlreadyExists         = "Email already exists in users collection"
	ErrDevUsernameAlreadyExists      = "Username already exists in users collection"
	ErrDevUserNotExists              = "User does not exist"
	ErrDevFailedToHashPassword       = "Failed to hash password"
	ErrDevAuthTokenMissing           = "Authorization token missing from request"
	ErrDevAuthTokenInvalid           = "Authorization token invalid"
	ErrDevAuthTokenInvalidOrExpired  = "Authorization token invalid or expired"
	ErrDevAuthGenerateToken          = "Failed to generate JWT token"
	ErrDevAuthSigningMethod          = "Unexpected JWT signing method"
	ErrDevAuthInvalidSession         = "Session not found or expired in redis"
	ErrDevRoleNotAllowed             = "Session role is not allowed for this route"
	ErrDevRedisStoreSession          = "Failed to store session in redis"

	ErrDevMongoDBInsertDocument = "MongoDB failed to insert document"
	ErrDevMongoDBFindDocument   = "MongoDB failed to find document"
	ErrDevMongoDBUpdateDocument = "MongoDB failed to update document"
	ErrDevMongoDBCountDocuments = "MongoDB failed to count documents"
	ErrDevMongoDBNotObjectID    = "Provided ID is not a valid ObjectID"

	ErrDevRedisSet           = "Redis SET failed"
	ErrDevRedisGet           = "Redis GET failed for key %s"
	ErrDevRedisDelete        = "Redis DEL failed"
	ErrDevRedisAddToSet      = "Redis SADD failed"
	ErrDevRedisGetSetMembers = "Redis SMEMBERS failed"
	ErrDevRedisUnlock        = "Redis unlock failed"

	ErrDevAppointmentNotFound      = "Appointment document not found"
	ErrDevAppointmentNotPriced     = "Appointment price is nil"
	ErrDevAppointmentTransition    = "Appointment status transition rejected: %s -> %s"
	ErrDevPaymentNotFound          = "Payment document not found"
	ErrDevReservationNotFound      = "Vaccination reservation document not found"
	ErrDevReservationTransition    = "Vaccination reservation transition rejected"
	ErrDevNotificationNotFound     = "Notification document not found"
	ErrDevPrescriptionNotFound     = "Prescription document not found"
	ErrDevPriceMustBePositive      = "SetPrice called with non-positive price"
	ErrDevHashServiceUnreachable   = "Hash service request failed"
	ErrDevHashServiceBadStatus     = "Hash service returned non-2xx status: %d"
	ErrDevCallbackResultMissing    = "Callback payload has no success indicator"
	ErrDevQueuePublish             = "Failed to publish message to queue"
	ErrDevQueueConsume             = "Failed to consume message from queue"
	ErrDevMinioCreateObject        = "Minio failed to store object in bucket %s"
	ErrDevMinioPresignObject       = "Minio failed to presign object URL"
	ErrDevMailerSend               = "SMTP send failed"
	ErrDevAttachmentExceedsMaxSize = "Attachment size exceeds configured maximum"
)
