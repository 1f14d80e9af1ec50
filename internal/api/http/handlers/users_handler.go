package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rentcar-service/internal/api/dto"
	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/service"
	apperrors "github.com/spec-kit/rentcar-service/pkg/util/errorutil"
)

// UsersHandler exposes registration, login and user directory endpoints.
type UsersHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService) *UsersHandler {
	return &UsersHandler{auth: authService, users: userService}
}

// Register handles POST /register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if _, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.MessageResponse{Message: "registration successful"})
}

// Login handles POST /login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Message:   "login successful",
		UserName:  user.Name,
		UserEmail: user.Email,
	})
}

// Profile handles GET /api/user/:email.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return apperrors.NewValidationError("malformed email", nil)
	}

	user, err := h.users.Profile(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(h.userResponse(user))
}

// ListAll handles GET /api/all-users.
func (h *UsersHandler) ListAll(c *fiber.Ctx) error {
	users, err := h.users.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(h.userResponses(users))
}

// ListOnline handles GET /api/online-users.
func (h *UsersHandler) ListOnline(c *fiber.Ctx) error {
	users, err := h.users.ListOnline(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(h.userResponses(users))
}

func (h *UsersHandler) userResponses(users []domain.User) []dto.UserResponse {
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, h.userResponse(&users[i]))
	}
	return items
}

func (h *UsersHandler) userResponse(user *domain.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Online: h.users.IsOnline(user),
	}
	if !user.LastSeen.IsZero() {
		seen := user.LastSeen
		resp.LastSeen = &seen
	}
	return resp
}
