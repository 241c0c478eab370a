package mailer

import (
	"fmt"
	"html/template"
	"strings"
)

// Template names accepted by Render.
const (
	TemplateOTP       = "otp"
	TemplateWelcome   = "welcome"
	TemplatePriceDrop = "price-drop"
)

// OTPEmail carries the substitution values for the verification email.
type OTPEmail struct {
	Name          string
	Code          string
	ExpiryMinutes int
}

// WelcomeEmail carries the substitution values for the newsletter email.
type WelcomeEmail struct {
	Email string
}

// PriceDropEmail carries the substitution values for the price-drop email.
type PriceDropEmail struct {
	Name           string
	ProductName    string
	ProductImage   string
	OldPrice       float64
	NewPrice       float64
	Savings        float64
	SavingsPercent int
}

var templates = template.Must(template.New("emails").Parse(`
{{define "otp"}}
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:24px">
  <h2>Verify your email</h2>
  <p>Hi {{.Name}},</p>
  <p>Your verification code is:</p>
  <p style="font-size:32px;font-weight:bold;letter-spacing:6px">{{.Code}}</p>
  <p>This code expires in {{.ExpiryMinutes}} minutes. If you didn't request it, you can ignore this email.</p>
</div>
{{end}}

{{define "welcome"}}
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:24px">
  <h2>Welcome to the newsletter!</h2>
  <p>Thanks for subscribing with {{.Email}}. You'll hear from us when there's something worth your inbox.</p>
</div>
{{end}}

{{define "price-drop"}}
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:24px">
  <h2>Price drop on your wishlist</h2>
  <p>Hi {{.Name}},</p>
  <p><strong>{{.ProductName}}</strong> just dropped from {{printf "%.2f" .OldPrice}} to {{printf "%.2f" .NewPrice}}.</p>
  {{if .ProductImage}}<img src="{{.ProductImage}}" alt="{{.ProductName}}" style="max-width:100%"/>{{end}}
  <p>You save {{printf "%.2f" .Savings}} ({{.SavingsPercent}}% off).</p>
</div>
{{end}}
`))

// Render executes the named email template with the given values and returns
// the HTML document. Business logic stays free of string templating.
func Render(name string, data interface{}) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("mailer: failed to render %q: %w", name, err)
	}
	return sb.String(), nil
}
