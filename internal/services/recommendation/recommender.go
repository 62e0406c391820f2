// Package recommendation is the shopping assistant collaborator. The ledger
// never calls it; handlers expose it so a real model-backed implementation
// can replace StaticRecommender without touching anything else.
package recommendation

import (
	"context"
	"fmt"
	"strings"

	apperrors "daswos/internal/errors"
	"daswos/internal/models"

	"github.com/google/uuid"
)

const maxQueryLength = 200

// Recommender turns a shopping query into a recommendation.
type Recommender interface {
	Recommend(ctx context.Context, query string) (*models.Recommendation, error)
}

// StaticRecommender returns a fixed-shape answer. Product ids are derived
// from the query so repeated queries agree.
type StaticRecommender struct{}

func NewStaticRecommender() *StaticRecommender {
	return &StaticRecommender{}
}

func (r *StaticRecommender) Recommend(ctx context.Context, query string) (*models.Recommendation, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.ErrInvalidArgument.WithMessage("query is required")
	}
	if len(query) > maxQueryLength {
		return nil, apperrors.ErrInvalidArgument.WithMessage("query must be at most %d characters", maxQueryLength)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &models.Recommendation{
		ProductID:  productID(query, 0),
		Confidence: 0.8,
		Reasoning:  fmt.Sprintf("Best match for %q", query),
		Alternatives: []models.Recommendation{
			{
				ProductID:    productID(query, 1),
				Confidence:   0.6,
				Reasoning:    "Lower priced alternative",
				Alternatives: []models.Recommendation{},
			},
		},
	}, nil
}

func productID(query string, rank int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s#%d", strings.ToLower(query), rank))).String()
}
