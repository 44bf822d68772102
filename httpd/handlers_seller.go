package httpd

import (
	"net/http"

	"github.com/eshoplabs/auth"
)

func (s *Server) handleSellerRegistration(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterSellerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.engine.RequestSellerRegistration(r.Context(), req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "OTP sent successfully on email",
	})
}

func (s *Server) handleVerifySeller(w http.ResponseWriter, r *http.Request) {
	var req auth.VerifySellerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	account, err := s.engine.VerifySellerRegistration(r.Context(), req)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Seller registered successfully",
		"seller":  account.Public(),
	})
}

func (s *Server) handleLoginSeller(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	account, pair, err := s.engine.Login(r.Context(), auth.RoleSeller, req)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	// Overwrite any lingering user session cookies before setting seller ones.
	clearAuthCookies(w)
	setAuthCookie(w, accessCookie, pair.AccessToken)
	setAuthCookie(w, refreshCookie, pair.RefreshToken)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Seller logged in successfully",
		"seller":  account.Public(),
	})
}

func (s *Server) handleCreateShop(w http.ResponseWriter, r *http.Request) {
	var req auth.CreateShopRequest
	if !decodeBody(w, r, &req) {
		return
	}
	shop, err := s.engine.CreateShop(r.Context(), req)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"shop":    shop,
	})
}

func (s *Server) handleAddPayoutAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SellerID        string `json:"sellerId"`
		PayoutAccountID string `json:"payout_account_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.engine.LinkPayoutAccount(r.Context(), req.SellerID, req.PayoutAccountID); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Payout account linked",
	})
}
