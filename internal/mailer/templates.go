package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const activationBody = `
<p>Hello {{.name}},</p>
<p>Your verification code is <strong>{{.otp}}</strong>. It expires in 5 minutes.</p>
<p>If you did not request this, you can ignore this mail.</p>`

const resetBody = `
<p>Hello {{.name}},</p>
<p>Use the code <strong>{{.otp}}</strong> to reset your password. It expires in 5 minutes.</p>
<p>If you did not request a reset, your account is still safe.</p>`

type mailTemplate struct {
	subject string
	body    *template.Template
}

var templates = map[string]mailTemplate{
	"user-activation-mail": {
		subject: "Verify your email",
		body:    template.Must(template.New("user-activation-mail").Parse(activationBody)),
	},
	"seller-activation-mail": {
		subject: "Verify your seller account",
		body:    template.Must(template.New("seller-activation-mail").Parse(activationBody)),
	},
	"forgot-password-user-mail": {
		subject: "Reset your password",
		body:    template.Must(template.New("forgot-password-user-mail").Parse(resetBody)),
	},
	"forgot-password-seller-mail": {
		subject: "Reset your seller password",
		body:    template.Must(template.New("forgot-password-seller-mail").Parse(resetBody)),
	},
}

// Render produces the subject and HTML body for a named template.
func Render(name string, data map[string]string) (subject, body string, err error) {
	tpl, ok := templates[name]
	if !ok {
		return "", "", fmt.Errorf("unknown mail template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.body.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return tpl.subject, buf.String(), nil
}
