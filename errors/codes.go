package errors

// ErrorCode identifies an application error class on the wire.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_FORBIDDEN         ErrorCode = 1006
	ErrorCode_CONFLICT          ErrorCode = 1007

	ErrorCode_MINUTES_VERSION_CONFLICT ErrorCode = 2000
	ErrorCode_MINUTES_APPROVAL_BLOCKED ErrorCode = 2001
	ErrorCode_MINUTES_VERSION_MISSING  ErrorCode = 2002

	ErrorCode_DB_CONNECTION_FAILED ErrorCode = 3000
	ErrorCode_DB_QUERY_FAILED      ErrorCode = 3001
	ErrorCode_DB_TRANSACTION_FAILED ErrorCode = 3002

	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 4000
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 4001
	ErrorCode_TRANSCRIPTION_FAILED       ErrorCode = 4002
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:          "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                  "FORBIDDEN",
	ErrorCode_CONFLICT:                   "CONFLICT",
	ErrorCode_MINUTES_VERSION_CONFLICT:   "MINUTES_VERSION_CONFLICT",
	ErrorCode_MINUTES_APPROVAL_BLOCKED:   "MINUTES_APPROVAL_BLOCKED",
	ErrorCode_MINUTES_VERSION_MISSING:    "MINUTES_VERSION_MISSING",
	ErrorCode_DB_CONNECTION_FAILED:       "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:      "DB_TRANSACTION_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_TRANSCRIPTION_FAILED:       "TRANSCRIPTION_FAILED",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
