// Package identity provides the account persistence implementations behind
// the engine's IdentityStore interface: a Postgres store for production and
// an in-memory store for tests and local development.
package identity
