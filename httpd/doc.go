// Package httpd is the thin transport adapter over the auth engine: a chi
// router, cookie plumbing, and a single error boundary that maps engine error
// kinds onto the platform's uniform {status, message, details?} body. No
// business rules live here.
package httpd
