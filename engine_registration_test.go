package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRequestUserRegistrationValidation(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  RegisterUserRequest
		want error
	}{
		{"missing name", RegisterUserRequest{Email: "a@b.com", Password: "pw"}, ErrMissingFields},
		{"missing email", RegisterUserRequest{Name: "A", Password: "pw"}, ErrMissingFields},
		{"missing password", RegisterUserRequest{Name: "A", Email: "a@b.com"}, ErrMissingFields},
		{"bad email", RegisterUserRequest{Name: "A", Email: "not-an-email", Password: "pw"}, ErrInvalidEmail},
		{"email with spaces", RegisterUserRequest{Name: "A", Email: "a b@c.com", Password: "pw"}, ErrInvalidEmail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := env.engine.RequestUserRegistration(ctx, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
	if env.mailer.sendCount() != 0 {
		t.Fatal("no mail may be sent for invalid payloads")
	}
}

func TestRegistrationRejectsTakenEmailBeforeSendingOtp(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	env.registerUser(t, "Alice", "a@b.com", "password-1")
	sent := env.mailer.sendCount()

	err := env.engine.RequestUserRegistration(ctx, RegisterUserRequest{
		Name: "Mallory", Email: "a@b.com", Password: "password-2",
	})
	if !errors.Is(err, ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
	if env.mailer.sendCount() != sent {
		t.Fatal("otp must not be mailed for an already-taken address")
	}
}

func TestUserRegistrationHappyPath(t *testing.T) {
	env := newTestEngine(t)

	account := env.registerUser(t, "Alice", "a@b.com", "password-1")
	if account.ID == "" || account.Name != "Alice" || account.Email != "a@b.com" {
		t.Fatalf("unexpected account: %+v", account)
	}
	if account.PasswordHash == "" || account.PasswordHash == "password-1" {
		t.Fatal("password must be stored hashed")
	}
	if !strings.HasPrefix(account.PasswordHash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", account.PasswordHash)
	}

	public := account.Public()
	if public.ID != account.ID || public.Email != account.Email {
		t.Fatalf("public projection mismatch: %+v", public)
	}
}

func TestVerifyUserRegistrationWrongOtpPropagates(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	req := RegisterUserRequest{Name: "Alice", Email: "a@b.com", Password: "password-1"}
	if err := env.engine.RequestUserRegistration(ctx, req); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	_, err := env.engine.VerifyUserRegistration(ctx, VerifyUserRequest{RegisterUserRequest: req, Otp: "0000"})
	if !errors.Is(err, ErrOtpIncorrect) {
		t.Fatalf("expected ErrOtpIncorrect, got %v", err)
	}
	if !strings.Contains(err.Error(), "2 attempts left") {
		t.Fatalf("expected remaining-attempts message, got %q", err)
	}

	// correct code on the second attempt still succeeds
	account, err := env.engine.VerifyUserRegistration(ctx, VerifyUserRequest{
		RegisterUserRequest: req,
		Otp:                 env.mailer.lastCode(t),
	})
	if err != nil {
		t.Fatalf("verify failed after one wrong attempt: %v", err)
	}
	if account.ID == "" {
		t.Fatal("expected created account")
	}
}

func TestRegistrationCooldownBetweenRequests(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	req := RegisterUserRequest{Name: "Alice", Email: "a@b.com", Password: "password-1"}
	if err := env.engine.RequestUserRegistration(ctx, req); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if err := env.engine.RequestUserRegistration(ctx, req); !errors.Is(err, ErrOtpCooldown) {
		t.Fatalf("expected ErrOtpCooldown on immediate re-request, got %v", err)
	}
}

func TestSellerRegistrationRequiresContactFields(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	err := env.engine.RequestSellerRegistration(ctx, RegisterSellerRequest{
		Name: "Bob", Email: "s@b.com", Password: "password-1",
	})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields without phone and country, got %v", err)
	}
}

func TestSellerRegistrationShopAndPayout(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	req := RegisterSellerRequest{
		Name: "Bob", Email: "s@b.com", Password: "password-1",
		Phone: "+4912345", Country: "DE",
	}
	if err := env.engine.RequestSellerRegistration(ctx, req); err != nil {
		t.Fatalf("seller request failed: %v", err)
	}
	seller, err := env.engine.VerifySellerRegistration(ctx, VerifySellerRequest{
		RegisterSellerRequest: req,
		Otp:                   env.mailer.lastCode(t),
	})
	if err != nil {
		t.Fatalf("seller verify failed: %v", err)
	}
	if seller.Phone != "+4912345" || seller.Country != "DE" {
		t.Fatalf("seller fields lost: %+v", seller)
	}

	// Shop creation is a separate explicit step.
	shop, err := env.engine.CreateShop(ctx, CreateShopRequest{
		SellerID:     seller.ID,
		Name:         "Bob's Boards",
		Bio:          "Hand-built longboards",
		Address:      "1 Board Way",
		OpeningHours: "Mon-Fri 9-17",
		Category:     "sports",
	})
	if err != nil {
		t.Fatalf("create shop failed: %v", err)
	}
	if shop.ID == "" || shop.SellerID != seller.ID {
		t.Fatalf("unexpected shop: %+v", shop)
	}

	if err := env.engine.LinkPayoutAccount(ctx, seller.ID, "acct_123"); err != nil {
		t.Fatalf("payout linking failed: %v", err)
	}
	got, err := env.engine.LoggedInAccount(ctx, RoleSeller, seller.ID)
	if err != nil {
		t.Fatalf("seller lookup failed: %v", err)
	}
	if got.PayoutAccountID != "acct_123" {
		t.Fatalf("payout account not persisted: %+v", got)
	}
	if got.Shop == nil || got.Shop.Name != "Bob's Boards" {
		t.Fatalf("shop not attached to seller: %+v", got.Shop)
	}
}

func TestCreateShopRejectsLongBio(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	req := RegisterSellerRequest{
		Name: "Bob", Email: "s@b.com", Password: "password-1",
		Phone: "+4912345", Country: "DE",
	}
	if err := env.engine.RequestSellerRegistration(ctx, req); err != nil {
		t.Fatalf("seller request failed: %v", err)
	}
	seller, err := env.engine.VerifySellerRegistration(ctx, VerifySellerRequest{
		RegisterSellerRequest: req,
		Otp:                   env.mailer.lastCode(t),
	})
	if err != nil {
		t.Fatalf("seller verify failed: %v", err)
	}

	_, err = env.engine.CreateShop(ctx, CreateShopRequest{
		SellerID:     seller.ID,
		Name:         "Bob's Boards",
		Bio:          strings.Repeat("word ", 101),
		Address:      "1 Board Way",
		OpeningHours: "Mon-Fri 9-17",
		Category:     "sports",
	})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected validation failure for >100 word bio, got %v", err)
	}
}

func TestVerifyRegistrationRechecksUniqueness(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	req := RegisterUserRequest{Name: "Alice", Email: "a@b.com", Password: "password-1"}
	if err := env.engine.RequestUserRegistration(ctx, req); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	code := env.mailer.lastCode(t)

	// A concurrent registration completes between the two steps.
	env.redis.FastForward(61 * time.Second)
	env.registerUser(t, "Racer", "a@b.com", "password-2")

	_, err := env.engine.VerifyUserRegistration(ctx, VerifyUserRequest{RegisterUserRequest: req, Otp: code})
	if !errors.Is(err, ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists on verify, got %v", err)
	}
}
