package handlers

import (
	"daswos/internal/services/recommendation"
	"daswos/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type RecommendationHandler struct {
	recommender recommendation.Recommender
	log         logrus.FieldLogger
}

func NewRecommendationHandler(recommender recommendation.Recommender, log logrus.FieldLogger) *RecommendationHandler {
	return &RecommendationHandler{
		recommender: recommender,
		log:         log,
	}
}

func (h *RecommendationHandler) Recommend(c *fiber.Ctx) error {
	rec, err := h.recommender.Recommend(c.UserContext(), c.Query("q"))
	if err != nil {
		return handleError(c, h.log, err)
	}

	return utils.Success(c, fiber.Map{
		"recommendation": rec,
	})
}
