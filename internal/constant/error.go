package constant

const (
	ERR_VALIDATION_CODE               = "VALIDATION_ERROR"
	ERR_INTERNAL_SERVER_ERROR_CODE    = "INTERNAL_SERVER_ERROR"
	ERR_INTENRAL_SERVER_ERROR_MESSAGE = "Something went wrong. If the problem persists, please contact support"
	ERR_CONFLICT_ERROR                = "CONFLICT_ERROR"
	ERR_WRONG_CHANNEL_ERROR           = "WRONG_CHANNEL_ERROR"
)
