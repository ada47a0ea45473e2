package errorx

type Code string

func (c Code) String() string {
	return string(c)
}

const (
	// Client errors (4xx)
	CodeInvalid          Code = "INVALID"
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeMalformedJSON    Code = "MALFORMED_JSON"
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeNotFound         Code = "NOT_FOUND"
	CodeMethodNotAllowed Code = "METHOD_NOT_ALLOWED"
	CodeConflict         Code = "CONFLICT"
	CodeDuplicateEntry   Code = "DUPLICATE_ENTRY"

	// Verification lifecycle
	CodeAlreadyVerified Code = "ALREADY_VERIFIED"
	CodeExpired         Code = "VERIFICATION_CODE_EXPIRED"
	CodeInvalidCode     Code = "INVALID_VERIFICATION_CODE"
	CodeResendThrottled Code = "RESEND_THROTTLED"
	CodeDeliveryFailed  Code = "DELIVERY_FAILED"
	CodeNoCodeIssued    Code = "NO_CODE_ISSUED"

	// Server errors (5xx)
	CodeInternal           Code = "INTERNAL_ERROR"
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
)
