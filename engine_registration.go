package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// RequestUserRegistration validates a fresh user signup and sends the
// activation OTP. Nothing is persisted; the client resubmits the same payload
// with the code via [Engine.VerifyUserRegistration].
func (e *Engine) RequestUserRegistration(ctx context.Context, req RegisterUserRequest) error {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fmt.Errorf("%w for registration", ErrMissingFields)
	}
	return e.requestRegistration(ctx, RoleUser, req.Name, req.Email)
}

// RequestSellerRegistration is the seller-variant signup step; phone number
// and country are additionally mandatory.
func (e *Engine) RequestSellerRegistration(ctx context.Context, req RegisterSellerRequest) error {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Phone == "" || req.Country == "" {
		return fmt.Errorf("%w for registration", ErrMissingFields)
	}
	return e.requestRegistration(ctx, RoleSeller, req.Name, req.Email)
}

func (e *Engine) requestRegistration(ctx context.Context, role Role, name, email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}

	// Uniqueness is checked before any OTP is issued so codes are never
	// mailed for an already-taken address.
	if _, err := e.identity.FindByEmail(ctx, role, email); err == nil {
		return ErrAccountExists
	} else if !errors.Is(err, ErrAccountNotFound) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := e.codes.Request(ctx, email, name, purposeRegistration, activationTemplate(role)); err != nil {
		return mapOTPError(err)
	}
	e.logger.Info("registration otp sent", zap.String("role", string(role)))
	return nil
}

// VerifyUserRegistration consumes the activation OTP and persists the user
// account. OTP failures (wrong code, lockout, expiry) propagate unchanged.
func (e *Engine) VerifyUserRegistration(ctx context.Context, req VerifyUserRequest) (*Account, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Otp == "" {
		return nil, fmt.Errorf("%w for registration", ErrMissingFields)
	}
	return e.verifyRegistration(ctx, &Account{
		Role:  RoleUser,
		Name:  req.Name,
		Email: req.Email,
	}, req.Password, req.Otp)
}

// VerifySellerRegistration is the seller-variant verification step.
func (e *Engine) VerifySellerRegistration(ctx context.Context, req VerifySellerRequest) (*Account, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Otp == "" ||
		req.Phone == "" || req.Country == "" {
		return nil, fmt.Errorf("%w for registration", ErrMissingFields)
	}
	return e.verifyRegistration(ctx, &Account{
		Role:    RoleSeller,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Country: req.Country,
	}, req.Password, req.Otp)
}

func (e *Engine) verifyRegistration(ctx context.Context, account *Account, plainPassword, code string) (*Account, error) {
	// Re-checked here: a concurrent registration may have completed between
	// the request and verify steps.
	if _, err := e.identity.FindByEmail(ctx, account.Role, account.Email); err == nil {
		return nil, ErrAccountExists
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := e.codes.Verify(ctx, account.Email, purposeRegistration, code); err != nil {
		return nil, mapOTPError(err)
	}

	hash, err := e.hasher.Hash(plainPassword)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	account.PasswordHash = hash

	created, err := e.identity.Create(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	e.logger.Info("account created",
		zap.String("role", string(created.Role)),
		zap.String("account_id", created.ID))
	return created, nil
}

// maxShopBioWords caps the storefront bio length.
const maxShopBioWords = 100

// CreateShop attaches the storefront to an existing seller account. This is a
// separate client-driven step after seller verification, not part of it.
func (e *Engine) CreateShop(ctx context.Context, req CreateShopRequest) (*Shop, error) {
	if req.SellerID == "" || req.Name == "" || req.Bio == "" || req.Address == "" ||
		req.OpeningHours == "" || req.Category == "" {
		return nil, fmt.Errorf("%w for shop creation", ErrMissingFields)
	}
	if len(strings.Fields(req.Bio)) > maxShopBioWords {
		return nil, fmt.Errorf("%w: shop bio must be at most %d words", ErrMissingFields, maxShopBioWords)
	}

	seller, err := e.identity.FindByID(ctx, RoleSeller, req.SellerID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	shop, err := e.identity.CreateShop(ctx, &Shop{
		SellerID:     seller.ID,
		Name:         req.Name,
		Bio:          req.Bio,
		Address:      req.Address,
		OpeningHours: req.OpeningHours,
		Category:     req.Category,
		Website:      req.Website,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	e.logger.Info("shop created", zap.String("seller_id", seller.ID), zap.String("shop_id", shop.ID))
	return shop, nil
}

// LinkPayoutAccount stores an externally registered payment account id on the
// seller record. Creating that account is the payment provider's concern.
func (e *Engine) LinkPayoutAccount(ctx context.Context, sellerID, payoutAccountID string) error {
	if sellerID == "" || payoutAccountID == "" {
		return fmt.Errorf("%w for payout linking", ErrMissingFields)
	}
	if _, err := e.identity.FindByID(ctx, RoleSeller, sellerID); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := e.identity.SetPayoutAccount(ctx, sellerID, payoutAccountID); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
