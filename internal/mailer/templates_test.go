package mailer

import (
	"strings"
	"testing"
)

func TestRenderKnownTemplates(t *testing.T) {
	data := map[string]string{"name": "Alice", "otp": "1234"}

	cases := []struct {
		template    string
		wantSubject string
	}{
		{"user-activation-mail", "Verify your email"},
		{"seller-activation-mail", "Verify your seller account"},
		{"forgot-password-user-mail", "Reset your password"},
		{"forgot-password-seller-mail", "Reset your seller password"},
	}
	for _, tc := range cases {
		t.Run(tc.template, func(t *testing.T) {
			subject, body, err := Render(tc.template, data)
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}
			if subject != tc.wantSubject {
				t.Fatalf("subject = %q, want %q", subject, tc.wantSubject)
			}
			if !strings.Contains(body, "Alice") || !strings.Contains(body, "1234") {
				t.Fatalf("body missing name or code: %q", body)
			}
		})
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, _, err := Render("no-such-mail", nil); err == nil {
		t.Fatal("expected error for unknown template name")
	}
}

func TestRenderEscapesData(t *testing.T) {
	_, body, err := Render("user-activation-mail", map[string]string{
		"name": "<script>alert(1)</script>",
		"otp":  "1234",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(body, "<script>") {
		t.Fatalf("html in data must be escaped: %q", body)
	}
}
