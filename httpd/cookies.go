package httpd

import "net/http"

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"

	// Cookies outlive the access token on purpose: staleness is caught at
	// token verification, not cookie expiry.
	cookieMaxAge = 24 * 60 * 60
)

func setAuthCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// clearAuthCookies overwrites both token cookies with expired ones. Seller
// login calls this first so a stale user session never leaks into a seller
// session on the same browser.
func clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{accessCookie, refreshCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
		})
	}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
