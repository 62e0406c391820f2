package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	apperrors "daswos/internal/errors"

	"github.com/stripe/stripe-go/v72"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test_secret"

func signPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.", at.Unix())))
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func eventPayload(eventType, metadata string) []byte {
	return []byte(fmt.Sprintf(`{
  "id": "evt_1",
  "object": "event",
  "api_version": %q,
  "type": %q,
  "data": {
    "object": {
      "id": "pi_123",
      "object": "payment_intent",
      "amount": 250,
      "currency": "usd",
      "status": "succeeded",
      "metadata": %s
    }
  }
}`, stripe.APIVersion, eventType, metadata))
}

func TestStripeProvider_ParseWebhook(t *testing.T) {
	p := NewStripeProvider(StripeConfig{SecretKey: "sk_test", WebhookSecret: testWebhookSecret}, nil)

	t.Run("succeeded intent", func(t *testing.T) {
		payload := eventPayload("payment_intent.succeeded", `{"user_id": "42", "coins": "250"}`)

		intent, err := p.ParseWebhook(payload, signPayload(payload, testWebhookSecret, time.Now()))
		require.NoError(t, err)
		require.NotNil(t, intent)
		assert.Equal(t, "pi_123", intent.ID)
		assert.Equal(t, uint(42), intent.UserID)
		assert.Equal(t, int64(250), intent.Coins)
		assert.Equal(t, int64(250), intent.AmountCents)
		assert.True(t, intent.Succeeded())
	})

	t.Run("other event types are ignored", func(t *testing.T) {
		payload := eventPayload("payment_intent.created", `{"user_id": "42", "coins": "250"}`)

		intent, err := p.ParseWebhook(payload, signPayload(payload, testWebhookSecret, time.Now()))
		require.NoError(t, err)
		assert.Nil(t, intent)
	})

	t.Run("wrong secret", func(t *testing.T) {
		payload := eventPayload("payment_intent.succeeded", `{"user_id": "42", "coins": "250"}`)

		_, err := p.ParseWebhook(payload, signPayload(payload, "whsec_other", time.Now()))
		assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		payload := eventPayload("payment_intent.succeeded", `{"user_id": "42", "coins": "250"}`)

		_, err := p.ParseWebhook(payload, signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour)))
		assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)
	})

	t.Run("missing metadata", func(t *testing.T) {
		payload := eventPayload("payment_intent.succeeded", `{}`)

		_, err := p.ParseWebhook(payload, signPayload(payload, testWebhookSecret, time.Now()))
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})
}

func TestNewStripeProvider_Defaults(t *testing.T) {
	p := NewStripeProvider(StripeConfig{}, nil)
	assert.Equal(t, "usd", p.config.Currency)
	assert.Equal(t, int64(1), p.config.CoinPriceCents)
}

func TestReference(t *testing.T) {
	assert.Equal(t, "stripe:pi_123", Reference("pi_123"))
}
