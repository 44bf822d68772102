package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/eshoplabs/auth/internal/token"
)

// IssueTokenPair mints an access and a refresh token bound to the subject and
// role. The transport layer decides how to deliver them (httpOnly cookies in
// the shipped adapter).
func (e *Engine) IssueTokenPair(subjectID string, role Role) (TokenPair, error) {
	access, err := e.tokens.IssueAccess(subjectID, string(role))
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := e.tokens.IssueRefresh(subjectID, string(role))
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// RefreshAccessToken verifies a refresh token and mints a new access token for
// the same subject and role. The refresh token is not rotated. The subject is
// re-fetched so tokens for deleted accounts stop working immediately.
func (e *Engine) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrUnauthorized
	}

	claims, err := e.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return "", mapTokenError(err)
	}

	role := Role(claims.Role)
	if !role.Valid() {
		return "", ErrTokenInvalid
	}
	if _, err := e.identity.FindByID(ctx, role, claims.ID); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return "", ErrAccountNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return e.tokens.IssueAccess(claims.ID, claims.Role)
}

// Authenticate verifies an access token and extracts the caller identity for
// route guards. Every failure is unauthenticated; expired and malformed
// tokens keep their distinct messages.
func (e *Engine) Authenticate(accessToken string) (Claims, error) {
	if accessToken == "" {
		return Claims{}, ErrUnauthorized
	}
	claims, err := e.tokens.ParseAccess(accessToken)
	if err != nil {
		return Claims{}, mapTokenError(err)
	}
	role := Role(claims.Role)
	if !role.Valid() {
		return Claims{}, ErrTokenInvalid
	}
	return Claims{SubjectID: claims.ID, Role: role}, nil
}

// mapTokenError keeps expiry distinct from forgery in what clients see.
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, token.ErrExpired):
		return ErrTokenExpired
	default:
		return ErrTokenInvalid
	}
}
