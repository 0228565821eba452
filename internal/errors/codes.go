package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"

	// Reconciliation error codes
	CodeInvalidIdentity          Code = "INVALID_IDENTITY"
	CodeMissingRequiredParams    Code = "MISSING_REQUIRED_PARAMS"
	CodeCreateVerificationFailed Code = "CREATE_VERIFICATION_FAILED"
	CodeDeleteVerificationFailed Code = "DELETE_VERIFICATION_FAILED"
	CodeUnsupportedOperation     Code = "UNSUPPORTED_OPERATION"

	// Remote system error codes
	CodeRemoteOperation  Code = "REMOTE_OPERATION_ERROR"
	CodeRemoteAPI        Code = "REMOTE_API_ERROR"
	CodeRemoteAuth       Code = "REMOTE_AUTH_ERROR"
	CodeResourceNotFound Code = "RESOURCE_NOT_FOUND"
	CodeConnection       Code = "CONNECTION_ERROR"
)

func (c Code) String() string {
	return string(c)
}
