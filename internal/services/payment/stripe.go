package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	apperrors "daswos/internal/errors"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
	"github.com/stripe/stripe-go/v72/webhook"
)

const eventPaymentIntentSucceeded = "payment_intent.succeeded"

// StripeConfig configures a StripeProvider.
type StripeConfig struct {
	SecretKey      string
	WebhookSecret  string
	Currency       string
	CoinPriceCents int64
}

// StripeProvider implements Provider on top of stripe-go.
type StripeProvider struct {
	api    *client.API
	config StripeConfig
}

// NewStripeProvider builds a provider with its own API client; the
// package-level stripe.Key is left untouched.
func NewStripeProvider(cfg StripeConfig, backends *stripe.Backends) *StripeProvider {
	if cfg.Currency == "" {
		cfg.Currency = string(stripe.CurrencyUSD)
	}
	if cfg.CoinPriceCents <= 0 {
		cfg.CoinPriceCents = 1
	}
	return &StripeProvider{
		api:    client.New(cfg.SecretKey, backends),
		config: cfg,
	}
}

func (p *StripeProvider) CreatePaymentIntent(ctx context.Context, userID uint, coins int64) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(coins * p.config.CoinPriceCents),
		Currency:           stripe.String(p.config.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Description:        stripe.String(fmt.Sprintf("%d DasWos coins", coins)),
	}
	params.Context = ctx
	params.AddMetadata(metadataUserID, strconv.FormatUint(uint64(userID), 10))
	params.AddMetadata(metadataCoins, strconv.FormatInt(coins, 10))
	params.SetIdempotencyKey(uuid.NewString())

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, apperrors.ErrPaymentProviderFailed.Wrap(err)
	}
	return toIntent(pi)
}

func (p *StripeProvider) RetrievePaymentIntent(ctx context.Context, id string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.Get(id, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == 404 {
			return nil, apperrors.ErrInvalidArgument.WithMessage("unknown payment intent %q", id)
		}
		return nil, apperrors.ErrPaymentProviderFailed.Wrap(err)
	}
	return toIntent(pi)
}

func (p *StripeProvider) ParseWebhook(payload []byte, signature string) (*Intent, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.config.WebhookSecret)
	if err != nil {
		return nil, apperrors.ErrInvalidSignature.Wrap(err)
	}
	if event.Type != eventPaymentIntentSucceeded {
		return nil, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, apperrors.ErrInvalidArgument.WithMessage("malformed payment intent event: %v", err)
	}
	return toIntent(&pi)
}

func toIntent(pi *stripe.PaymentIntent) (*Intent, error) {
	userID, err := strconv.ParseUint(pi.Metadata[metadataUserID], 10, 64)
	if err != nil {
		return nil, apperrors.ErrInvalidArgument.WithMessage("payment intent %s has no valid %s metadata", pi.ID, metadataUserID)
	}
	coins, err := strconv.ParseInt(pi.Metadata[metadataCoins], 10, 64)
	if err != nil || coins <= 0 {
		return nil, apperrors.ErrInvalidArgument.WithMessage("payment intent %s has no valid %s metadata", pi.ID, metadataCoins)
	}

	return &Intent{
		ID:           pi.ID,
		UserID:       uint(userID),
		Coins:        coins,
		AmountCents:  pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		ClientSecret: pi.ClientSecret,
	}, nil
}
