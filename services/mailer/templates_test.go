package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOTP(t *testing.T) {
	body, err := Render(TemplateOTP, OTPEmail{Name: "Ada", Code: "123456", ExpiryMinutes: 10})
	require.NoError(t, err)
	assert.Contains(t, body, "123456")
	assert.Contains(t, body, "Ada")
	assert.Contains(t, body, "10 minutes")
}

func TestRenderWelcome(t *testing.T) {
	body, err := Render(TemplateWelcome, WelcomeEmail{Email: "a@example.com"})
	require.NoError(t, err)
	assert.Contains(t, body, "a@example.com")
}

func TestRenderPriceDropEscapesValues(t *testing.T) {
	body, err := Render(TemplatePriceDrop, PriceDropEmail{
		Name:           "Valued Customer",
		ProductName:    "Mugs <3",
		OldPrice:       50,
		NewPrice:       40,
		Savings:        10,
		SavingsPercent: 20,
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Mugs &lt;3")
	assert.Contains(t, body, "20% off")
	assert.NotContains(t, body, "<img")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render("no-such-template", nil)
	assert.Error(t, err)
}
