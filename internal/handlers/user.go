package handlers

import (
	"errors"

	"bazari/internal/services/user"
	"bazari/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		UserType string `json:"userType"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.Email == "" || input.Name == "" {
		return response.BadRequest(c, "Email and name are required")
	}

	created, err := h.userService.Register(user.RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		UserType: input.UserType,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) || errors.Is(err, user.ErrInvalidPassword) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, "Failed to register user")
	}

	return response.Created(c, fiber.Map{
		"id":       created.ID,
		"email":    created.Email,
		"name":     created.Name,
		"userType": created.UserType,
	})
}
