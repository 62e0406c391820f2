package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "daswos/internal/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    error
		notWant error
	}{
		{
			name: "record not found",
			err:  gorm.ErrRecordNotFound,
			want: apperrors.ErrWalletNotFound,
		},
		{
			name: "wrapped record not found",
			err:  fmt.Errorf("first: %w", gorm.ErrRecordNotFound),
			want: apperrors.ErrWalletNotFound,
		},
		{
			name: "duplicate key",
			err:  gorm.ErrDuplicatedKey,
			want: apperrors.ErrDuplicateReference,
		},
		{
			name:    "cancelled",
			err:     context.Canceled,
			want:    context.Canceled,
			notWant: apperrors.ErrStoreUnavailable,
		},
		{
			name:    "deadline",
			err:     context.DeadlineExceeded,
			want:    context.DeadlineExceeded,
			notWant: apperrors.ErrStoreUnavailable,
		},
		{
			name:    "driver failure",
			err:     errors.New("dial tcp: connection refused"),
			want:    apperrors.ErrStoreUnavailable,
			notWant: apperrors.ErrWalletNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError("op", tt.err)
			assert.ErrorIs(t, got, tt.want)
			if tt.notWant != nil {
				assert.NotErrorIs(t, got, tt.notWant)
			}
		})
	}
}

func TestTranslateErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection reset by peer")
	got := translateError("set balance", cause)

	assert.ErrorIs(t, got, cause)
	assert.Contains(t, got.Error(), "set balance")
}
