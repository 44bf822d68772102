package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Login checks credentials for the given role and issues a fresh token pair.
// An unknown email and a wrong password fail with distinct messages; that is
// the platform's established contract.
func (e *Engine) Login(ctx context.Context, role Role, req LoginRequest) (*Account, TokenPair, error) {
	if req.Email == "" || req.Password == "" {
		return nil, TokenPair{}, fmt.Errorf("%w for login", ErrMissingFields)
	}

	account, err := e.identity.FindByEmail(ctx, role, req.Email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, TokenPair{}, ErrUserNotFound
		}
		return nil, TokenPair{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if !e.hasher.Verify(account.PasswordHash, req.Password) {
		e.logger.Info("login rejected", zap.String("role", string(role)))
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := e.IssueTokenPair(account.ID, role)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	e.logger.Info("login succeeded",
		zap.String("role", string(role)),
		zap.String("account_id", account.ID))
	return account, pair, nil
}

// LoggedInAccount fetches the account behind an authenticated subject id,
// including the shop and payout fields for sellers.
func (e *Engine) LoggedInAccount(ctx context.Context, role Role, subjectID string) (*Account, error) {
	account, err := e.identity.FindByID(ctx, role, subjectID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return account, nil
}
