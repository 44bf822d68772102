package httpd

import (
	"net/http"

	"github.com/eshoplabs/auth"
)

func (s *Server) handleUserRegistration(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.engine.RequestUserRegistration(r.Context(), req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "OTP sent successfully on email",
	})
}

func (s *Server) handleVerifyUser(w http.ResponseWriter, r *http.Request) {
	var req auth.VerifyUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	account, err := s.engine.VerifyUserRegistration(r.Context(), req)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "User registered successfully",
		"user":    account.Public(),
	})
}

func (s *Server) handleLoginUser(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	account, pair, err := s.engine.Login(r.Context(), auth.RoleUser, req)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	setAuthCookie(w, accessCookie, pair.AccessToken)
	setAuthCookie(w, refreshCookie, pair.RefreshToken)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "User logged in successfully",
		"user":    account.Public(),
	})
}

func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	access, err := s.engine.RefreshAccessToken(r.Context(), cookieValue(r, refreshCookie))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	setAuthCookie(w, accessCookie, access)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Access token refreshed",
	})
}

func (s *Server) handleForgotPassword(role auth.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if err := s.engine.ForgotPassword(r.Context(), role, req.Email); err != nil {
			writeError(w, r, s.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "OTP sent to email, please verify your account",
		})
	}
}

func (s *Server) handleVerifyForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Otp   string `json:"otp"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.engine.VerifyForgotPasswordOtp(r.Context(), req.Email, req.Otp); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "OTP verified, you can reset your password now",
	})
}

func (s *Server) handleResetPassword(role auth.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email       string `json:"email"`
			NewPassword string `json:"newPassword"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		account, err := s.engine.ResetPassword(r.Context(), role, req.Email, req.NewPassword)
		if err != nil {
			writeError(w, r, s.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Password reset successfully",
			"user":    account.Public(),
		})
	}
}

func (s *Server) handleLoggedIn(role auth.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(r.Context())
		if !ok {
			writeError(w, r, s.logger, auth.ErrUnauthorized)
			return
		}
		account, err := s.engine.LoggedInAccount(r.Context(), role, claims.SubjectID)
		if err != nil {
			writeError(w, r, s.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"user":    account.Public(),
		})
	}
}
