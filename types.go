package auth

import "context"

// Role distinguishes the two account variants of the platform.
type Role string

const (
	// RoleUser is a buyer account.
	RoleUser Role = "user"
	// RoleSeller is a merchant account with shop and payout fields.
	RoleSeller Role = "seller"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleSeller
}

// Account is the persisted identity record shared by users and sellers.
// PasswordHash never leaves the package; callers receive [PublicAccount].
type Account struct {
	ID           string
	Role         Role
	Name         string
	Email        string
	PasswordHash string

	// Seller-only fields; zero for users.
	Phone           string
	Country         string
	Shop            *Shop
	PayoutAccountID string
}

// Shop is the one-to-one merchant storefront attached to a seller account.
type Shop struct {
	ID           string `json:"id"`
	SellerID     string `json:"sellerId"`
	Name         string `json:"name"`
	Bio          string `json:"bio"`
	Address      string `json:"address"`
	OpeningHours string `json:"opening_hours"`
	Category     string `json:"category"`
	Website      string `json:"website,omitempty"`
}

// PublicAccount is the client-visible projection of an [Account].
type PublicAccount struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	Country         string `json:"country,omitempty"`
	Shop            *Shop  `json:"shop,omitempty"`
	PayoutAccountID string `json:"payout_account_id,omitempty"`
}

// Public strips credential material from the account.
func (a *Account) Public() PublicAccount {
	return PublicAccount{
		ID:              a.ID,
		Name:            a.Name,
		Email:           a.Email,
		PhoneNumber:     a.Phone,
		Country:         a.Country,
		Shop:            a.Shop,
		PayoutAccountID: a.PayoutAccountID,
	}
}

// IdentityStore is the persistence collaborator for account records.
// Implementations must return [ErrAccountNotFound] (possibly wrapped) from the
// find methods when no record matches.
type IdentityStore interface {
	FindByEmail(ctx context.Context, role Role, email string) (*Account, error)
	FindByID(ctx context.Context, role Role, id string) (*Account, error)
	Create(ctx context.Context, account *Account) (*Account, error)
	UpdatePasswordHash(ctx context.Context, role Role, email, passwordHash string) error
	CreateShop(ctx context.Context, shop *Shop) (*Shop, error)
	SetPayoutAccount(ctx context.Context, sellerID, payoutAccountID string) error
}

// Mailer delivers a templated notification to an address. Implementations must
// honor the context deadline; the engine treats a timeout as a failed send and
// never retries.
type Mailer interface {
	Send(ctx context.Context, to, template string, data map[string]string) error
}

// RegisterUserRequest is the payload for user registration, both at the OTP
// request step and again at verification (no pending state is kept server-side).
type RegisterUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterSellerRequest adds the seller-mandatory contact fields.
type RegisterSellerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone_number"`
	Country  string `json:"country"`
}

// VerifyUserRequest resubmits the registration payload together with the OTP.
type VerifyUserRequest struct {
	RegisterUserRequest
	Otp string `json:"otp"`
}

// VerifySellerRequest resubmits the seller payload together with the OTP.
type VerifySellerRequest struct {
	RegisterSellerRequest
	Otp string `json:"otp"`
}

// LoginRequest carries credential login input.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateShopRequest is the explicit post-registration shop creation step for
// sellers. Bio is capped at 100 words.
type CreateShopRequest struct {
	SellerID     string `json:"sellerId"`
	Name         string `json:"name"`
	Bio          string `json:"bio"`
	Address      string `json:"address"`
	OpeningHours string `json:"opening_hours"`
	Category     string `json:"category"`
	Website      string `json:"website"`
}

// TokenPair is the result of a successful login or registration-free issuance.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Claims is the identity extracted from a verified access token.
type Claims struct {
	SubjectID string
	Role      Role
}
