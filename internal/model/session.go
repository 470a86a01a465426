package model

// LogoutReason tells session listeners why the session ended.
type LogoutReason string

const (
	// LogoutUser is an explicit logout.
	LogoutUser LogoutReason = "user"
	// LogoutUnauthorized is a forced logout after the server rejected the
	// credential and it could not be refreshed.
	LogoutUnauthorized LogoutReason = "unauthorized"
)
