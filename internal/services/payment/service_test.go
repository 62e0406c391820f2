package payment

import (
	"context"
	"testing"

	apperrors "daswos/internal/errors"
	"daswos/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreatePaymentIntent(ctx context.Context, userID uint, coins int64) (*Intent, error) {
	args := m.Called(ctx, userID, coins)
	intent, _ := args.Get(0).(*Intent)
	return intent, args.Error(1)
}

func (m *MockProvider) RetrievePaymentIntent(ctx context.Context, id string) (*Intent, error) {
	args := m.Called(ctx, id)
	intent, _ := args.Get(0).(*Intent)
	return intent, args.Error(1)
}

func (m *MockProvider) ParseWebhook(payload []byte, signature string) (*Intent, error) {
	args := m.Called(payload, signature)
	intent, _ := args.Get(0).(*Intent)
	return intent, args.Error(1)
}

type MockWallet struct {
	mock.Mock
}

func (m *MockWallet) GetOrCreateWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	args := m.Called(ctx, userID)
	wallet, _ := args.Get(0).(*models.Wallet)
	return wallet, args.Error(1)
}

func (m *MockWallet) Credit(ctx context.Context, userID uint, amount decimal.Decimal, reference string) (*models.Wallet, error) {
	args := m.Called(ctx, userID, amount, reference)
	wallet, _ := args.Get(0).(*models.Wallet)
	return wallet, args.Error(1)
}

func newTestService(provider Provider, wallets WalletService) Service {
	log, _ := test.NewNullLogger()
	return NewService(provider, wallets, log)
}

func succeededIntent(id string, userID uint, coins int64) *Intent {
	return &Intent{ID: id, UserID: userID, Coins: coins, AmountCents: coins, Currency: "usd", Status: IntentStatusSucceeded}
}

func matchAmount(want int64) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(want))
	})
}

func TestPaymentService_StartCoinPurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an intent for an existing wallet", func(t *testing.T) {
		provider := new(MockProvider)
		wallets := new(MockWallet)
		wallets.On("GetOrCreateWallet", ctx, uint(42)).Return(&models.Wallet{UserID: 42}, nil)
		provider.On("CreatePaymentIntent", ctx, uint(42), int64(500)).
			Return(&Intent{ID: "pi_1", ClientSecret: "pi_1_secret", Coins: 500, AmountCents: 500, Currency: "usd"}, nil)

		session, err := newTestService(provider, wallets).StartCoinPurchase(ctx, 42, 500)
		require.NoError(t, err)
		assert.Equal(t, "pi_1", session.IntentID)
		assert.Equal(t, "pi_1_secret", session.ClientSecret)
		assert.Equal(t, int64(500), session.AmountCents)

		provider.AssertExpectations(t)
		wallets.AssertExpectations(t)
	})

	t.Run("rejects invalid coin counts", func(t *testing.T) {
		provider := new(MockProvider)
		wallets := new(MockWallet)
		s := newTestService(provider, wallets)

		for _, coins := range []int64{0, -5, 100001} {
			_, err := s.StartCoinPurchase(ctx, 42, coins)
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		}
		provider.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("provider failure", func(t *testing.T) {
		provider := new(MockProvider)
		wallets := new(MockWallet)
		wallets.On("GetOrCreateWallet", ctx, uint(42)).Return(&models.Wallet{UserID: 42}, nil)
		provider.On("CreatePaymentIntent", ctx, uint(42), int64(10)).Return(nil, apperrors.ErrPaymentProviderFailed)

		_, err := newTestService(provider, wallets).StartCoinPurchase(ctx, 42, 10)
		assert.ErrorIs(t, err, apperrors.ErrPaymentProviderFailed)
	})
}

func TestPaymentService_CompleteCoinPurchase(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		userID     uint
		intent     *Intent
		setupMocks func(*MockWallet)
		wantErr    error
		wantReplay bool
	}{
		{
			name:   "credits a succeeded intent",
			userID: 42,
			intent: succeededIntent("pi_1", 42, 500),
			setupMocks: func(w *MockWallet) {
				w.On("Credit", ctx, uint(42), matchAmount(500), "stripe:pi_1").
					Return(&models.Wallet{UserID: 42, Balance: decimal.NewFromInt(500)}, nil)
			},
		},
		{
			name:   "replayed intent is reported as already applied",
			userID: 42,
			intent: succeededIntent("pi_1", 42, 500),
			setupMocks: func(w *MockWallet) {
				w.On("Credit", ctx, uint(42), matchAmount(500), "stripe:pi_1").
					Return(nil, apperrors.ErrDuplicateReference)
				w.On("GetOrCreateWallet", ctx, uint(42)).
					Return(&models.Wallet{UserID: 42, Balance: decimal.NewFromInt(500)}, nil)
			},
			wantReplay: true,
		},
		{
			name:    "pending intent is not credited",
			userID:  42,
			intent:  &Intent{ID: "pi_2", UserID: 42, Coins: 5, Status: "requires_payment_method"},
			wantErr: apperrors.ErrPaymentNotCompleted,
		},
		{
			name:    "intent owned by someone else",
			userID:  7,
			intent:  succeededIntent("pi_3", 42, 5),
			wantErr: apperrors.ErrInvalidArgument,
		},
		{
			name:   "store failure",
			userID: 42,
			intent: succeededIntent("pi_4", 42, 5),
			setupMocks: func(w *MockWallet) {
				w.On("Credit", ctx, uint(42), matchAmount(5), "stripe:pi_4").
					Return(nil, apperrors.ErrStoreUnavailable)
			},
			wantErr: apperrors.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(MockProvider)
			wallets := new(MockWallet)
			provider.On("RetrievePaymentIntent", ctx, tt.intent.ID).Return(tt.intent, nil)
			if tt.setupMocks != nil {
				tt.setupMocks(wallets)
			}

			result, err := newTestService(provider, wallets).CompleteCoinPurchase(ctx, tt.userID, tt.intent.ID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.intent.ID, result.IntentID)
				assert.Equal(t, tt.wantReplay, result.AlreadyApplied)
				assert.True(t, decimal.NewFromInt(tt.intent.Coins).Equal(result.Wallet.Balance))
			}
			provider.AssertExpectations(t)
			wallets.AssertExpectations(t)
		})
	}

	t.Run("missing intent id", func(t *testing.T) {
		_, err := newTestService(new(MockProvider), new(MockWallet)).CompleteCoinPurchase(ctx, 42, "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	ctx := context.Background()
	payload := []byte(`{}`)

	t.Run("credits succeeded intents", func(t *testing.T) {
		provider := new(MockProvider)
		wallets := new(MockWallet)
		provider.On("ParseWebhook", payload, "sig").Return(succeededIntent("pi_9", 3, 20), nil)
		wallets.On("Credit", ctx, uint(3), matchAmount(20), "stripe:pi_9").Return(&models.Wallet{UserID: 3}, nil)

		result, err := newTestService(provider, wallets).HandleWebhook(ctx, payload, "sig")
		require.NoError(t, err)
		assert.False(t, result.Ignored)
		assert.Equal(t, int64(20), result.Coins)
		wallets.AssertExpectations(t)
	})

	t.Run("ignores unrelated events", func(t *testing.T) {
		provider := new(MockProvider)
		wallets := new(MockWallet)
		provider.On("ParseWebhook", payload, "sig").Return(nil, nil)

		result, err := newTestService(provider, wallets).HandleWebhook(ctx, payload, "sig")
		require.NoError(t, err)
		assert.True(t, result.Ignored)
		wallets.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bad signature", func(t *testing.T) {
		provider := new(MockProvider)
		provider.On("ParseWebhook", payload, "forged").Return(nil, apperrors.ErrInvalidSignature)

		_, err := newTestService(provider, new(MockWallet)).HandleWebhook(ctx, payload, "forged")
		assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)
	})
}
