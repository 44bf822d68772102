// Package otp owns the lifecycle of one-time codes: generation, delivery
// throttling, verification, and lockout. All state lives in Redis under
// TTL-bearing keys, so every engine instance sharing the same Redis sees the
// same counters and locks. No in-process state is kept.
package otp
