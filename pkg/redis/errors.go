package redis

import "errors"

var (
	// ErrFailedToParseConnString is returned when the connection URL is malformed.
	ErrFailedToParseConnString = errors.New("failed to parse redis connection string")

	// ErrNotReady is returned when the server cannot be reached within the configured attempts.
	ErrNotReady = errors.New("redis server is not ready")

	// ErrHealthcheckFailed is returned by the healthcheck closure when ping fails.
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)
