package constants

import "time"

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyClaims    = "token_claims"
	ContextKeyRequestID = "request_id"
)

// Session cookie
const (
	SessionCookieName = "token"
	SessionTokenTTL   = 7 * 24 * time.Hour
	ResetTokenTTL     = 15 * time.Minute
	ResetTokenPurpose = "password-reset"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// User constraints
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 8
)

// Date formats accepted on input and produced on output
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Page routes
const (
	LandingPath   = "/dashboard"
	LoginPath     = "/login"
	SignupPath    = "/signup"
	HomePath      = "/"
	RequestIDHead = "X-Request-ID"
)
