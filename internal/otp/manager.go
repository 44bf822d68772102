package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrLocked indicates verification is locked after repeated failures.
	ErrLocked = errors.New("otp verification locked")
	// ErrTooManyRequests indicates the hourly send cap was reached.
	ErrTooManyRequests = errors.New("otp request limit reached")
	// ErrCooldown indicates a send was attempted inside the cooldown window.
	ErrCooldown = errors.New("otp send cooldown active")
	// ErrNotFound indicates no live code exists for the email.
	ErrNotFound = errors.New("otp not found or expired")
	// ErrIncorrect is matched by [IncorrectCodeError] via errors.Is.
	ErrIncorrect = errors.New("incorrect otp")
	// ErrDeliveryFailed indicates the notification send failed or timed out.
	ErrDeliveryFailed = errors.New("otp delivery failed")
	// ErrUnavailable indicates the Redis backend is unreachable.
	ErrUnavailable = errors.New("otp backend unavailable")
)

// IncorrectCodeError reports a wrong code together with the attempts the
// caller has left before lockout.
type IncorrectCodeError struct {
	Remaining int
}

func (e *IncorrectCodeError) Error() string {
	return fmt.Sprintf("incorrect otp, %d attempts left", e.Remaining)
}

// Is makes errors.Is(err, ErrIncorrect) hold for wrapped instances.
func (e *IncorrectCodeError) Is(target error) bool {
	return target == ErrIncorrect
}

// Sender delivers the generated code. Satisfied by the root package's Mailer.
type Sender interface {
	Send(ctx context.Context, to, template string, data map[string]string) error
}

// Config holds the TTL and threshold policy for one-time codes.
type Config struct {
	Prefix        string
	CodeTTL       time.Duration
	SendCooldown  time.Duration
	MaxAttempts   int
	LockTTL       time.Duration
	RequestWindow time.Duration
	MaxRequests   int
	SpamLockTTL   time.Duration
	ResetGrantTTL time.Duration
	SendTimeout   time.Duration
}

// Manager coordinates code issuance and verification for one email address.
// Correctness across instances hinges on Redis atomics: INCR for counters and
// EXPIRE NX to attach the window TTL exactly once.
type Manager struct {
	redis  redis.UniversalClient
	sender Sender
	config Config
}

// NewManager creates a Manager. The prefix defaults to "auth".
func NewManager(redisClient redis.UniversalClient, sender Sender, cfg Config) *Manager {
	if cfg.Prefix == "" {
		cfg.Prefix = "auth"
	}
	return &Manager{redis: redisClient, sender: sender, config: cfg}
}

// Challenges are keyed by purpose and email, so a registration code can never
// satisfy a password reset. Counters, locks, and cooldowns stay keyed by
// email alone: throttling and lockout protect the address, not one flow.
func (m *Manager) codeKey(purpose, email string) string {
	return m.config.Prefix + ":otp:" + purpose + ":" + email
}

func (m *Manager) cooldownKey(email string) string {
	return m.config.Prefix + ":otp_cooldown:" + email
}

func (m *Manager) requestCountKey(email string) string {
	return m.config.Prefix + ":otp_request_count:" + email
}

func (m *Manager) spamLockKey(email string) string {
	return m.config.Prefix + ":otp_spam_lock:" + email
}

func (m *Manager) attemptsKey(email string) string {
	return m.config.Prefix + ":otp_attempts:" + email
}

func (m *Manager) lockKey(email string) string {
	return m.config.Prefix + ":otp_lock:" + email
}

func (m *Manager) resetGrantKey(email string) string {
	return m.config.Prefix + ":reset_grant:" + email
}

// Request generates and delivers a fresh code for email and purpose.
// Restrictions are checked in fixed order (failure lock, spam lock, cooldown)
// so a caller always sees the most severe applicable failure. On success the
// new code overwrites any prior one for the same purpose and the cooldown
// starts.
//
// The code itself is never returned.
func (m *Manager) Request(ctx context.Context, email, name, purpose, template string) error {
	for _, check := range []struct {
		key string
		err error
	}{
		{m.lockKey(email), ErrLocked},
		{m.spamLockKey(email), ErrTooManyRequests},
		{m.cooldownKey(email), ErrCooldown},
	} {
		n, err := m.redis.Exists(ctx, check.key).Result()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if n > 0 {
			return check.err
		}
	}

	count, err := m.redis.Incr(ctx, m.requestCountKey(email)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	// EXPIRE NX attaches the hourly window exactly once, even under
	// concurrent first requests.
	if err := m.redis.ExpireNX(ctx, m.requestCountKey(email), m.config.RequestWindow).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if count >= int64(m.config.MaxRequests) {
		// The capping request itself is refused, not just the next one.
		if err := m.redis.Set(ctx, m.spamLockKey(email), "locked", m.config.SpamLockTTL).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return ErrTooManyRequests
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, m.config.SendTimeout)
	defer cancel()
	if err := m.sender.Send(sendCtx, email, template, map[string]string{
		"name": name,
		"otp":  code,
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	if err := m.redis.Set(ctx, m.codeKey(purpose, email), code, m.config.CodeTTL).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := m.redis.Set(ctx, m.cooldownKey(email), "1", m.config.SendCooldown).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Verify checks code against the live challenge for email and purpose. A
// match clears all verification state. The MaxAttempts-th consecutive
// mismatch replaces the challenge with a lock for LockTTL.
func (m *Manager) Verify(ctx context.Context, email, purpose, code string) error {
	stored, err := m.redis.Get(ctx, m.codeKey(purpose, email)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Exact string match, no normalization.
	if stored != code {
		failures, err := m.redis.Get(ctx, m.attemptsKey(email)).Int()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if failures >= m.config.MaxAttempts-1 {
			if err := m.redis.Set(ctx, m.lockKey(email), "locked", m.config.LockTTL).Err(); err != nil {
				return fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			if err := m.redis.Del(ctx, m.codeKey(purpose, email), m.attemptsKey(email)).Err(); err != nil {
				return fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			return ErrLocked
		}
		count, err := m.redis.Incr(ctx, m.attemptsKey(email)).Result()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		// TTL runs from the first failure only.
		if err := m.redis.ExpireNX(ctx, m.attemptsKey(email), m.config.CodeTTL).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return &IncorrectCodeError{Remaining: m.config.MaxAttempts - int(count)}
	}

	if err := m.redis.Del(ctx, m.codeKey(purpose, email), m.attemptsKey(email)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// GrantReset records that a password-reset OTP was verified for email. The
// grant is short-lived and consumed by exactly one reset.
func (m *Manager) GrantReset(ctx context.Context, email string) error {
	if err := m.redis.Set(ctx, m.resetGrantKey(email), "1", m.config.ResetGrantTTL).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// HasResetGrant reports whether an unclaimed reset grant exists for email
// without consuming it.
func (m *Manager) HasResetGrant(ctx context.Context, email string) (bool, error) {
	n, err := m.redis.Exists(ctx, m.resetGrantKey(email)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return n > 0, nil
}

// ConsumeReset atomically claims the reset grant for email. It reports false
// when no grant exists or it already expired.
func (m *Manager) ConsumeReset(ctx context.Context, email string) (bool, error) {
	err := m.redis.GetDel(ctx, m.resetGrantKey(email)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return true, nil
}

// generateCode draws a cryptographically sourced 4-digit code in [1000, 9999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+1000, 10), nil
}
