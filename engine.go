package auth

import (
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/eshoplabs/auth/internal/otp"
	"github.com/eshoplabs/auth/internal/token"
	"github.com/eshoplabs/auth/password"
)

// Engine is the authentication core. Construct it through [Builder.Build];
// the zero value is not usable. All methods are safe for concurrent use.
type Engine struct {
	config   Config
	identity IdentityStore
	codes    *otp.Manager
	tokens   *token.Manager
	hasher   *password.Hasher
	logger   *zap.Logger
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// otp challenge purposes; each scopes its own live code per email
const (
	purposeRegistration  = "registration"
	purposePasswordReset = "password-reset"
)

// activation and reset mail templates per role
const (
	templateUserActivation   = "user-activation-mail"
	templateSellerActivation = "seller-activation-mail"
	templateUserReset        = "forgot-password-user-mail"
	templateSellerReset      = "forgot-password-seller-mail"
)

func activationTemplate(role Role) string {
	if role == RoleSeller {
		return templateSellerActivation
	}
	return templateUserActivation
}

func resetTemplate(role Role) string {
	if role == RoleSeller {
		return templateSellerReset
	}
	return templateUserReset
}

// mapOTPError translates internal otp sentinels into the engine's public
// error vocabulary. IncorrectCodeError keeps its remaining-attempts message.
func mapOTPError(err error) error {
	var incorrect *otp.IncorrectCodeError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &incorrect):
		return fmt.Errorf("%w, you have %d attempts left", ErrOtpIncorrect, incorrect.Remaining)
	case errors.Is(err, otp.ErrLocked):
		return ErrOtpLocked
	case errors.Is(err, otp.ErrTooManyRequests):
		return ErrOtpTooManyRequests
	case errors.Is(err, otp.ErrCooldown):
		return ErrOtpCooldown
	case errors.Is(err, otp.ErrNotFound):
		return ErrOtpInvalid
	case errors.Is(err, otp.ErrDeliveryFailed):
		return ErrOtpDelivery
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}
