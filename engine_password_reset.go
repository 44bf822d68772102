package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ForgotPassword starts the OTP-gated reset flow. The account must exist;
// its stored name is used for mail templating.
func (e *Engine) ForgotPassword(ctx context.Context, role Role, email string) error {
	if email == "" {
		return fmt.Errorf("%w for password reset", ErrMissingFields)
	}

	account, err := e.identity.FindByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return ErrResetUserNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := e.codes.Request(ctx, email, account.Name, purposePasswordReset, resetTemplate(role)); err != nil {
		return mapOTPError(err)
	}
	e.logger.Info("password reset otp sent", zap.String("role", string(role)))
	return nil
}

// VerifyForgotPasswordOtp consumes the reset OTP. On success it records a
// short-lived reset grant for the email; [Engine.ResetPassword] requires and
// consumes that grant, so a reset can never bypass OTP verification.
func (e *Engine) VerifyForgotPasswordOtp(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return fmt.Errorf("%w for otp verification", ErrMissingFields)
	}
	if err := e.codes.Verify(ctx, email, purposePasswordReset, code); err != nil {
		return mapOTPError(err)
	}
	if err := e.codes.GrantReset(ctx, email); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// ResetPassword replaces the account password after a verified reset OTP.
// Reusing the current password is rejected.
func (e *Engine) ResetPassword(ctx context.Context, role Role, email, newPassword string) (*Account, error) {
	if email == "" || newPassword == "" {
		return nil, fmt.Errorf("%w for password reset", ErrMissingFields)
	}

	account, err := e.identity.FindByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrResetUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// The grant gates everything below, including the hash comparison, so
	// this path never confirms a password guess for unauthenticated callers.
	granted, err := e.codes.HasResetGrant(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !granted {
		return nil, ErrResetNotAuthorized
	}

	// A same-password rejection leaves the grant in place; the client can
	// retry with a different password without re-verifying an OTP.
	if e.hasher.Verify(account.PasswordHash, newPassword) {
		return nil, ErrSamePassword
	}

	claimed, err := e.codes.ConsumeReset(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !claimed {
		return nil, ErrResetNotAuthorized
	}

	hash, err := e.hasher.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := e.identity.UpdatePasswordHash(ctx, role, email, hash); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	account.PasswordHash = hash

	e.logger.Info("password reset completed",
		zap.String("role", string(role)),
		zap.String("account_id", account.ID))
	return account, nil
}
