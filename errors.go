package auth

import "errors"

var (
	// ErrMissingFields indicates a request omitted one or more required fields.
	ErrMissingFields = errors.New("please provide all the required fields")
	// ErrInvalidEmail indicates the submitted email failed format validation.
	ErrInvalidEmail = errors.New("please provide a valid email address")
	// ErrAccountExists indicates an account with the submitted email already exists.
	ErrAccountExists = errors.New("an account with this email already exists")
	// ErrUserNotFound indicates no account matched the submitted email at
	// login. The text is the client-facing message and is part of the API
	// contract.
	ErrUserNotFound = errors.New("User not found!")
	// ErrResetUserNotFound indicates the forgot/reset-password flows were
	// called for an email with no account. It carries the same message as
	// [ErrUserNotFound] but is a validation failure, not an auth one.
	ErrResetUserNotFound = errors.New("User not found!")
	// ErrInvalidCredentials indicates a failed password comparison at login.
	ErrInvalidCredentials = errors.New("Incorrect password or email!")
	// ErrSamePassword rejects a password reset that reuses the current password.
	ErrSamePassword = errors.New("New password should be different from old password")

	// ErrOtpLocked indicates OTP verification is locked after repeated failures.
	ErrOtpLocked = errors.New("too many failed attempts, try again after 15 minutes")
	// ErrOtpTooManyRequests indicates the hourly OTP request cap was reached.
	ErrOtpTooManyRequests = errors.New("too many otp requests, please wait 1 hour before requesting again")
	// ErrOtpCooldown indicates a new code was requested inside the send cooldown.
	ErrOtpCooldown = errors.New("please wait 1 minute before requesting a new otp")
	// ErrOtpInvalid indicates no live code exists for the email.
	ErrOtpInvalid = errors.New("invalid or expired otp")
	// ErrOtpIncorrect indicates a wrong code; the wrapped message carries attempts left.
	ErrOtpIncorrect = errors.New("incorrect otp")
	// ErrOtpDelivery indicates the notification send failed or timed out.
	ErrOtpDelivery = errors.New("failed to send otp, please try again")

	// ErrResetNotAuthorized indicates resetPassword was called without a prior
	// successful forgot-password OTP verification for the email.
	ErrResetNotAuthorized = errors.New("otp verification required before resetting password")

	// ErrUnauthorized indicates a missing credential on a guarded operation.
	ErrUnauthorized = errors.New("unauthorized, token missing")
	// ErrTokenExpired indicates a structurally valid token past its expiry.
	ErrTokenExpired = errors.New("token expired, please login again")
	// ErrTokenInvalid indicates a malformed token or bad signature.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrAccountNotFound indicates the token subject no longer exists.
	ErrAccountNotFound = errors.New("account not found")
	// ErrForbidden indicates the authenticated role is not allowed here.
	ErrForbidden = errors.New("access denied")

	// ErrStoreUnavailable indicates an identity or cache backend failure.
	ErrStoreUnavailable = errors.New("backend unavailable")
	// ErrEngineNotReady indicates the engine is missing a required dependency.
	ErrEngineNotReady = errors.New("engine not initialized")
)
