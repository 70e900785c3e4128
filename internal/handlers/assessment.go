package handlers

import (
	"github.com/gofiber/fiber/v2"

	"insuro/internal/services/assessment"
	"insuro/internal/services/claims"
	"insuro/internal/utils/response"
)

type AssessmentHandler struct {
	assessor *assessment.Service
	claims   *claims.Service
}

func NewAssessmentHandler(assessor *assessment.Service, claimSvc *claims.Service) *AssessmentHandler {
	return &AssessmentHandler{assessor: assessor, claims: claimSvc}
}

type assessRequest struct {
	ClaimID string `json:"claimId"`
	assessment.ClaimFields
}

type verifyRequest struct {
	ClaimID string `json:"claimId"`
}

// Assess scores a claim, applying any fields in the body first.
func (h *AssessmentHandler) Assess(c *fiber.Ctx) error {
	var input assessRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.ClaimID == "" {
		return response.BadRequest(c, "claimId is required")
	}
	return h.assess(c, input.ClaimID, &input.ClaimFields)
}

// AssessStored scores a claim using only its stored fields.
func (h *AssessmentHandler) AssessStored(c *fiber.Ctx) error {
	return h.assess(c, c.Params("id"), nil)
}

func (h *AssessmentHandler) assess(c *fiber.Ctx, claimID string, fields *assessment.ClaimFields) error {
	if _, err := h.claims.Get(c.UserContext(), caller(c), claimID); err != nil {
		return response.FromError(c, err)
	}

	result, err := h.assessor.Assess(c.UserContext(), claimID, fields)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Claim assessed successfully", result)
}

func (h *AssessmentHandler) Verify(c *fiber.Ctx) error {
	var input verifyRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.ClaimID == "" {
		return response.BadRequest(c, "claimId is required")
	}

	verdict, err := h.assessor.Verify(c.UserContext(), input.ClaimID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Claim verified successfully", verdict)
}
