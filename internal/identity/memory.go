package identity

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/eshoplabs/auth"
)

// Memory is a mutex-guarded in-process store. It backs tests and local
// development; it intentionally mirrors the Postgres store's semantics,
// including unique emails per role.
type Memory struct {
	mu       sync.RWMutex
	accounts map[string]*auth.Account // key: role + ":" + email
	byID     map[string]*auth.Account
	shops    map[string]*auth.Shop // key: seller id
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		accounts: make(map[string]*auth.Account),
		byID:     make(map[string]*auth.Account),
		shops:    make(map[string]*auth.Shop),
	}
}

func emailKey(role auth.Role, email string) string {
	return string(role) + ":" + email
}

// FindByEmail implements auth.IdentityStore.
func (m *Memory) FindByEmail(_ context.Context, role auth.Role, email string) (*auth.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[emailKey(role, email)]
	if !ok {
		return nil, auth.ErrAccountNotFound
	}
	return m.clone(account), nil
}

// FindByID implements auth.IdentityStore.
func (m *Memory) FindByID(_ context.Context, role auth.Role, id string) (*auth.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.byID[id]
	if !ok || account.Role != role {
		return nil, auth.ErrAccountNotFound
	}
	return m.clone(account), nil
}

// Create implements auth.IdentityStore.
func (m *Memory) Create(_ context.Context, account *auth.Account) (*auth.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.accounts[emailKey(account.Role, account.Email)]; exists {
		return nil, auth.ErrAccountExists
	}
	created := *account
	created.ID = uuid.NewString()
	m.accounts[emailKey(created.Role, created.Email)] = &created
	m.byID[created.ID] = &created
	return m.clone(&created), nil
}

// UpdatePasswordHash implements auth.IdentityStore.
func (m *Memory) UpdatePasswordHash(_ context.Context, role auth.Role, email, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[emailKey(role, email)]
	if !ok {
		return auth.ErrAccountNotFound
	}
	account.PasswordHash = passwordHash
	return nil
}

// CreateShop implements auth.IdentityStore.
func (m *Memory) CreateShop(_ context.Context, shop *auth.Shop) (*auth.Shop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *shop
	created.ID = uuid.NewString()
	m.shops[created.SellerID] = &created
	return &created, nil
}

// SetPayoutAccount implements auth.IdentityStore.
func (m *Memory) SetPayoutAccount(_ context.Context, sellerID, payoutAccountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.byID[sellerID]
	if !ok || account.Role != auth.RoleSeller {
		return auth.ErrAccountNotFound
	}
	account.PayoutAccountID = payoutAccountID
	return nil
}

// Delete removes an account; used to exercise deletion-after-issuance paths.
func (m *Memory) Delete(_ context.Context, role auth.Role, email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[emailKey(role, email)]
	if !ok {
		return
	}
	delete(m.accounts, emailKey(role, email))
	delete(m.byID, account.ID)
}

func (m *Memory) clone(account *auth.Account) *auth.Account {
	copied := *account
	if account.Role == auth.RoleSeller {
		if shop, ok := m.shops[account.ID]; ok {
			shopCopy := *shop
			copied.Shop = &shopCopy
		}
	}
	return &copied
}
