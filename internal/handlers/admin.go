package handlers

import (
	"github.com/gofiber/fiber/v2"

	"insuro/internal/services/review"
	"insuro/internal/services/stats"
	"insuro/internal/utils/response"
)

type AdminHandler struct {
	review *review.Service
	stats  stats.Service
}

func NewAdminHandler(reviewSvc *review.Service, statsSvc stats.Service) *AdminHandler {
	return &AdminHandler{review: reviewSvc, stats: statsSvc}
}

type decisionRequest struct {
	Reason string `json:"reason"`
}

type fraudReviewRequest struct {
	ClaimIDs []string `json:"claimIds"`
}

func (h *AdminHandler) decision(c *fiber.Ctx) (review.Decision, bool) {
	var input decisionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return review.Decision{}, false
		}
	}
	return review.Decision{ReviewerID: caller(c).UserID, Reason: input.Reason}, true
}

func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	d, ok := h.decision(c)
	if !ok {
		return response.BadRequest(c, "Invalid request format")
	}
	claim, err := h.review.Approve(c.UserContext(), c.Params("id"), d)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Claim approved", claim)
}

func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	d, ok := h.decision(c)
	if !ok {
		return response.BadRequest(c, "Invalid request format")
	}
	claim, err := h.review.Reject(c.UserContext(), c.Params("id"), d)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Claim rejected", claim)
}

func (h *AdminHandler) FraudReview(c *fiber.Ctx) error {
	var input fraudReviewRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return response.BadRequest(c, "Invalid request format")
		}
	}

	report, err := h.review.RunFraudReview(c.UserContext(), input.ClaimIDs)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Fraud review completed", report)
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	summary, err := h.stats.Summary(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Statistics retrieved successfully", summary)
}
