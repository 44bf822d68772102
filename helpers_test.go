package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// capturingMailer records every send so tests can read the delivered code.
type capturingMailer struct {
	mu    sync.Mutex
	sends []capturedMail
	fail  bool
}

type capturedMail struct {
	to       string
	template string
	name     string
	code     string
}

func (m *capturingMailer) Send(_ context.Context, to, template string, data map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("delivery refused")
	}
	m.sends = append(m.sends, capturedMail{
		to:       to,
		template: template,
		name:     data["name"],
		code:     data["otp"],
	})
	return nil
}

func (m *capturingMailer) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sends) == 0 {
		t.Fatal("no otp mail was sent")
	}
	return m.sends[len(m.sends)-1].code
}

func (m *capturingMailer) sendCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sends)
}

// fakeIdentityStore is the in-test IdentityStore, keyed like the production
// stores: unique email per role.
type fakeIdentityStore struct {
	mu       sync.Mutex
	accounts map[string]*Account
	shops    map[string]*Shop
}

func newFakeIdentityStore() *fakeIdentityStore {
	return &fakeIdentityStore{
		accounts: make(map[string]*Account),
		shops:    make(map[string]*Shop),
	}
}

func (f *fakeIdentityStore) key(role Role, email string) string {
	return string(role) + ":" + email
}

func (f *fakeIdentityStore) FindByEmail(_ context.Context, role Role, email string) (*Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[f.key(role, email)]
	if !ok {
		return nil, ErrAccountNotFound
	}
	out := *account
	return &out, nil
}

func (f *fakeIdentityStore) FindByID(_ context.Context, role Role, id string) (*Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, account := range f.accounts {
		if account.ID == id && account.Role == role {
			out := *account
			if shop, ok := f.shops[id]; ok {
				shopCopy := *shop
				out.Shop = &shopCopy
			}
			return &out, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (f *fakeIdentityStore) Create(_ context.Context, account *Account) (*Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.accounts[f.key(account.Role, account.Email)]; exists {
		return nil, ErrAccountExists
	}
	created := *account
	created.ID = uuid.NewString()
	f.accounts[f.key(created.Role, created.Email)] = &created
	out := created
	return &out, nil
}

func (f *fakeIdentityStore) UpdatePasswordHash(_ context.Context, role Role, email, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[f.key(role, email)]
	if !ok {
		return ErrAccountNotFound
	}
	account.PasswordHash = hash
	return nil
}

func (f *fakeIdentityStore) CreateShop(_ context.Context, shop *Shop) (*Shop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	created := *shop
	created.ID = uuid.NewString()
	f.shops[created.SellerID] = &created
	out := created
	return &out, nil
}

func (f *fakeIdentityStore) SetPayoutAccount(_ context.Context, sellerID, payoutAccountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, account := range f.accounts {
		if account.ID == sellerID && account.Role == RoleSeller {
			account.PayoutAccountID = payoutAccountID
			return nil
		}
	}
	return ErrAccountNotFound
}

func (f *fakeIdentityStore) delete(role Role, email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.accounts, f.key(role, email))
}

func testConfig() Config {
	cfg := defaultConfig()
	cfg.Token.AccessSecret = []byte("test-access-secret")
	cfg.Token.RefreshSecret = []byte("test-refresh-secret")
	cfg.Password.Cost = 4 // min bcrypt cost keeps tests fast
	return cfg
}

type testEnv struct {
	engine *Engine
	redis  *miniredis.Miniredis
	mailer *capturingMailer
	store  *fakeIdentityStore
}

func newTestEngine(t *testing.T) *testEnv {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := newFakeIdentityStore()
	mail := &capturingMailer{}

	engine, err := New().
		WithConfig(testConfig()).
		WithRedis(rdb).
		WithIdentityStore(store).
		WithMailer(mail).
		Build()
	if err != nil {
		t.Fatalf("engine build failed: %v", err)
	}
	return &testEnv{engine: engine, redis: mr, mailer: mail, store: store}
}

// registerUser drives the two-step registration to a created account.
func (env *testEnv) registerUser(t *testing.T, name, email, pass string) *Account {
	t.Helper()
	ctx := context.Background()

	req := RegisterUserRequest{Name: name, Email: email, Password: pass}
	if err := env.engine.RequestUserRegistration(ctx, req); err != nil {
		t.Fatalf("registration request failed: %v", err)
	}
	account, err := env.engine.VerifyUserRegistration(ctx, VerifyUserRequest{
		RegisterUserRequest: req,
		Otp:                 env.mailer.lastCode(t),
	})
	if err != nil {
		t.Fatalf("registration verify failed: %v", err)
	}
	env.redis.FastForward(61 * time.Second) // clear the send cooldown
	return account
}
