package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eshoplabs/auth"
)

// Postgres persists accounts in three tables: users, sellers, shops.
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres wraps an existing pool; the caller owns its lifecycle.
func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	email    TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sellers (
	id                TEXT PRIMARY KEY,
	name              TEXT NOT NULL,
	email             TEXT NOT NULL UNIQUE,
	password          TEXT NOT NULL,
	phone_number      TEXT NOT NULL,
	country           TEXT NOT NULL,
	payout_account_id TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS shops (
	id            TEXT PRIMARY KEY,
	seller_id     TEXT NOT NULL UNIQUE REFERENCES sellers(id),
	name          TEXT NOT NULL,
	bio           TEXT NOT NULL,
	address       TEXT NOT NULL,
	opening_hours TEXT NOT NULL,
	category      TEXT NOT NULL,
	website       TEXT NOT NULL DEFAULT ''
);
`

// Migrate creates the schema when absent. Idempotent.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.db.Exec(ctx, schema)
	return err
}

// FindByEmail implements auth.IdentityStore.
func (p *Postgres) FindByEmail(ctx context.Context, role auth.Role, email string) (*auth.Account, error) {
	return p.find(ctx, role, "email", email)
}

// FindByID implements auth.IdentityStore.
func (p *Postgres) FindByID(ctx context.Context, role auth.Role, id string) (*auth.Account, error) {
	return p.find(ctx, role, "id", id)
}

func (p *Postgres) find(ctx context.Context, role auth.Role, column, value string) (*auth.Account, error) {
	account := &auth.Account{Role: role}
	var err error
	switch role {
	case auth.RoleSeller:
		err = p.db.QueryRow(ctx, fmt.Sprintf(`
			SELECT id, name, email, password, phone_number, country, payout_account_id
			FROM sellers WHERE %s = $1`, column), value).
			Scan(&account.ID, &account.Name, &account.Email, &account.PasswordHash,
				&account.Phone, &account.Country, &account.PayoutAccountID)
	default:
		err = p.db.QueryRow(ctx, fmt.Sprintf(`
			SELECT id, name, email, password
			FROM users WHERE %s = $1`, column), value).
			Scan(&account.ID, &account.Name, &account.Email, &account.PasswordHash)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, auth.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	if role == auth.RoleSeller {
		shop, err := p.findShop(ctx, account.ID)
		if err != nil {
			return nil, err
		}
		account.Shop = shop
	}
	return account, nil
}

func (p *Postgres) findShop(ctx context.Context, sellerID string) (*auth.Shop, error) {
	shop := &auth.Shop{}
	err := p.db.QueryRow(ctx, `
		SELECT id, seller_id, name, bio, address, opening_hours, category, website
		FROM shops WHERE seller_id = $1`, sellerID).
		Scan(&shop.ID, &shop.SellerID, &shop.Name, &shop.Bio, &shop.Address,
			&shop.OpeningHours, &shop.Category, &shop.Website)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return shop, nil
}

// Create implements auth.IdentityStore.
func (p *Postgres) Create(ctx context.Context, account *auth.Account) (*auth.Account, error) {
	created := *account
	created.ID = uuid.NewString()

	var err error
	switch account.Role {
	case auth.RoleSeller:
		_, err = p.db.Exec(ctx, `
			INSERT INTO sellers (id, name, email, password, phone_number, country)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			created.ID, created.Name, created.Email, created.PasswordHash,
			created.Phone, created.Country)
	default:
		_, err = p.db.Exec(ctx, `
			INSERT INTO users (id, name, email, password)
			VALUES ($1, $2, $3, $4)`,
			created.ID, created.Name, created.Email, created.PasswordHash)
	}
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePasswordHash implements auth.IdentityStore.
func (p *Postgres) UpdatePasswordHash(ctx context.Context, role auth.Role, email, passwordHash string) error {
	table := "users"
	if role == auth.RoleSeller {
		table = "sellers"
	}
	tag, err := p.db.Exec(ctx, fmt.Sprintf(`UPDATE %s SET password = $1 WHERE email = $2`, table),
		passwordHash, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrAccountNotFound
	}
	return nil
}

// CreateShop implements auth.IdentityStore.
func (p *Postgres) CreateShop(ctx context.Context, shop *auth.Shop) (*auth.Shop, error) {
	created := *shop
	created.ID = uuid.NewString()
	_, err := p.db.Exec(ctx, `
		INSERT INTO shops (id, seller_id, name, bio, address, opening_hours, category, website)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		created.ID, created.SellerID, created.Name, created.Bio, created.Address,
		created.OpeningHours, created.Category, created.Website)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// SetPayoutAccount implements auth.IdentityStore.
func (p *Postgres) SetPayoutAccount(ctx context.Context, sellerID, payoutAccountID string) error {
	tag, err := p.db.Exec(ctx, `UPDATE sellers SET payout_account_id = $1 WHERE id = $2`,
		payoutAccountID, sellerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrAccountNotFound
	}
	return nil
}
