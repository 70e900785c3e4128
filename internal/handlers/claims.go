package handlers

import (
	"github.com/gofiber/fiber/v2"

	"insuro/internal/middleware"
	"insuro/internal/services/claims"
	"insuro/internal/utils/pagination"
	"insuro/internal/utils/response"
)

type ClaimHandler struct {
	svc *claims.Service
}

func NewClaimHandler(svc *claims.Service) *ClaimHandler {
	return &ClaimHandler{svc: svc}
}

func caller(c *fiber.Ctx) claims.Caller {
	return claims.CallerFromToken(middleware.Claims(c))
}

func (h *ClaimHandler) Submit(c *fiber.Ctx) error {
	var input claims.SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	result, err := h.svc.Submit(c.UserContext(), caller(c).UserID, input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Claim submitted successfully", result)
}

func (h *ClaimHandler) List(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	list, total, err := h.svc.List(c.UserContext(), caller(c), claims.ListQuery{
		Status: c.Query("status"),
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	p.Total = total
	return c.JSON(pagination.Response(p, list))
}

func (h *ClaimHandler) Get(c *fiber.Ctx) error {
	claim, err := h.svc.Get(c.UserContext(), caller(c), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Claim retrieved successfully", claim)
}

func (h *ClaimHandler) AttachFile(c *fiber.Ctx) error {
	var input claims.FileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	file, err := h.svc.AttachFile(c.UserContext(), caller(c), c.Params("id"), input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "File attached successfully", file)
}
