package auth

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/eshoplabs/auth/internal/otp"
	"github.com/eshoplabs/auth/internal/token"
	"github.com/eshoplabs/auth/password"
)

// Builder assembles an [Engine]. Construction is allocation-only; no I/O
// happens until the engine methods are called.
type Builder struct {
	config   Config
	redis    redis.UniversalClient
	identity IdentityStore
	mailer   Mailer
	logger   *zap.Logger

	built bool
}

// New returns a Builder preloaded with the production default configuration.
func New() *Builder {
	return &Builder{config: defaultConfig()}
}

// WithConfig replaces the default configuration wholesale.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis sets the shared cache client used for OTP and lockout state.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithIdentityStore sets the account persistence collaborator.
func (b *Builder) WithIdentityStore(store IdentityStore) *Builder {
	b.identity = store
	return b
}

// WithMailer sets the notification sender for OTP delivery.
func (b *Builder) WithMailer(m Mailer) *Builder {
	b.mailer = m
	return b
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// Build validates the configuration and wires the engine. A Builder can build
// at most once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.redis == nil {
		return nil, errors.New("redis client is required")
	}
	if b.identity == nil {
		return nil, errors.New("identity store is required")
	}
	if b.mailer == nil {
		return nil, errors.New("mailer is required")
	}
	if err := validateConfig(b.config); err != nil {
		return nil, err
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}

	tokens, err := token.NewManager(token.Config{
		AccessSecret:  b.config.Token.AccessSecret,
		RefreshSecret: b.config.Token.RefreshSecret,
		AccessTTL:     b.config.Token.AccessTTL,
		RefreshTTL:    b.config.Token.RefreshTTL,
		Issuer:        b.config.Token.Issuer,
	})
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewHasher(b.config.Password.Cost)
	if err != nil {
		return nil, err
	}

	codes := otp.NewManager(b.redis, b.mailer, otp.Config{
		Prefix:        b.config.RedisPrefix,
		CodeTTL:       b.config.OTP.CodeTTL,
		SendCooldown:  b.config.OTP.SendCooldown,
		MaxAttempts:   b.config.OTP.MaxAttempts,
		LockTTL:       b.config.OTP.LockTTL,
		RequestWindow: b.config.OTP.RequestWindow,
		MaxRequests:   b.config.OTP.MaxRequests,
		SpamLockTTL:   b.config.OTP.SpamLockTTL,
		ResetGrantTTL: b.config.OTP.ResetGrantTTL,
		SendTimeout:   b.config.OTP.SendTimeout,
	})

	b.built = true
	return &Engine{
		config:   b.config,
		identity: b.identity,
		codes:    codes,
		tokens:   tokens,
		hasher:   hasher,
		logger:   b.logger,
	}, nil
}
