// Package auth implements the account and session core of the eshop platform:
// OTP-gated registration for users and sellers, credential login, JWT access and
// refresh token issuance, and OTP-gated password reset.
//
// The package is designed for concurrent server workloads: Engine methods are safe
// to call from multiple goroutines after initialization through [Builder.Build].
// All shared mutable state (one-time codes, attempt counters, lockouts, cooldowns)
// lives in Redis with per-key TTLs, so multiple service instances coordinate
// without in-process locks.
//
// # Architecture boundaries
//
// auth is the public surface. It exposes [Engine], [Builder], [Config], the
// [IdentityStore] and [Mailer] collaborator interfaces, and value types
// ([Account], [TokenPair], request structs). OTP lifecycle management, token
// signing, and store implementations live under internal/ and are never exported.
//
// # What this package must NOT do
//
//   - Expose Redis clients, raw OTP codes, or password hashes in its public API.
//   - Perform HTTP concerns (routing, cookies, status codes); those belong to
//     the httpd adapter.
//   - Retry notification delivery; a send that fails or times out fails the
//     request.
package auth
