package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rentcar-service/internal/api/dto"
	"github.com/spec-kit/rentcar-service/internal/service"
	apperrors "github.com/spec-kit/rentcar-service/pkg/util/errorutil"
)

// ContactHandler exposes the contact form and its inbox.
type ContactHandler struct {
	contact *service.ContactService
}

// NewContactHandler constructs handler.
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contact: contactService}
}

// Submit handles POST /contact.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if _, err := h.contact.Submit(c.UserContext(), req.Name, req.Email, req.Message); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.MessageResponse{Message: "message sent"})
}

// ListAll handles GET /api/all-messages.
func (h *ContactHandler) ListAll(c *fiber.Ctx) error {
	msgs, err := h.contact.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ContactMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, dto.ContactMessageResponse{
			ID:      m.ID,
			Name:    m.Name,
			Email:   m.Email,
			Message: m.Message,
			Date:    m.Date,
		})
	}
	return c.JSON(items)
}
