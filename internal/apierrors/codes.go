package apierrors

// Machine-readable error codes
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotFound           = "NOT_FOUND"
	CodePermissionDenied   = "PERMISSION_DENIED"
	CodeConfigurationError = "CONFIGURATION_ERROR"
	CodeConflict           = "CONFLICT"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeCompanyNameExists  = "COMPANY_NAME_EXISTS"
	CodeAccountIDExists    = "ACCOUNT_ID_EXISTS"
	CodeLastAdmin          = "LAST_ADMIN"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeInvalidInvite      = "INVALID_INVITE"
	CodeInviteExpired      = "INVITE_EXPIRED"
	CodeCaptchaFailed      = "CAPTCHA_FAILED"
	CodeInternal           = "INTERNAL_ERROR"
)
