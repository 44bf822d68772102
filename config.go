package auth

import (
	"errors"
	"time"
)

// Config carries all tunable engine parameters. Instances are intended to be
// configured during initialization and then treated as immutable.
type Config struct {
	OTP         OTPConfig
	Token       TokenConfig
	Password    PasswordConfig
	RedisPrefix string
}

/*
====================================
OTP CONFIG
====================================
*/

// OTPConfig governs one-time code generation, delivery throttling, and the
// lockout policy. The defaults reproduce the platform's production windows:
// 5 minute codes, 1 minute send cooldown, 3 verification strikes, 15 minute
// lock, 5 sends per hour.
type OTPConfig struct {
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

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig holds the signing material and lifetimes for the two token
// classes. Access and refresh secrets must differ so a refresh token can never
// pass access verification, and vice versa.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig selects the bcrypt cost factor. The default of 10 matches the
// interactive-login latency budget the platform was tuned for.
type PasswordConfig struct {
	Cost int
}

// DefaultConfig returns the production defaults. Token secrets must still be
// supplied by the caller.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		OTP: OTPConfig{
			CodeTTL:       5 * time.Minute,
			SendCooldown:  time.Minute,
			MaxAttempts:   3,
			LockTTL:       15 * time.Minute,
			RequestWindow: time.Hour,
			MaxRequests:   5,
			SpamLockTTL:   time.Hour,
			ResetGrantTTL: 10 * time.Minute,
			SendTimeout:   10 * time.Second,
		},
		Token: TokenConfig{
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 7 * 24 * time.Hour,
			Issuer:     "eshop-auth",
		},
		Password: PasswordConfig{
			Cost: 10,
		},
		RedisPrefix: "auth",
	}
}

func validateConfig(cfg Config) error {
	if cfg.OTP.CodeTTL <= 0 || cfg.OTP.SendCooldown <= 0 || cfg.OTP.LockTTL <= 0 ||
		cfg.OTP.RequestWindow <= 0 || cfg.OTP.SpamLockTTL <= 0 || cfg.OTP.ResetGrantTTL <= 0 {
		return errors.New("otp TTL configuration must be positive")
	}
	if cfg.OTP.MaxAttempts < 1 || cfg.OTP.MaxRequests < 1 {
		return errors.New("otp attempt and request limits must be at least 1")
	}
	if cfg.OTP.SendTimeout <= 0 {
		return errors.New("otp send timeout must be positive")
	}
	if len(cfg.Token.AccessSecret) == 0 || len(cfg.Token.RefreshSecret) == 0 {
		return errors.New("token secrets are required")
	}
	if string(cfg.Token.AccessSecret) == string(cfg.Token.RefreshSecret) {
		return errors.New("access and refresh secrets must differ")
	}
	if cfg.Token.AccessTTL <= 0 || cfg.Token.RefreshTTL <= 0 {
		return errors.New("token TTL configuration must be positive")
	}
	if cfg.Password.Cost < 4 || cfg.Password.Cost > 31 {
		return errors.New("bcrypt cost out of range")
	}
	return nil
}
