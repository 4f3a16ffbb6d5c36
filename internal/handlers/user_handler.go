package handlers

import (
	"log"

	"contesthub/internal/middleware"
	"contesthub/internal/models"
	"contesthub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes. The router is expected to carry
// the authentication middleware already.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/users", h.HandleRegister)
	router.Get("/users", h.HandleListUsers)
	router.Patch("/users/:id", h.HandleSetRole)
	router.Get("/users/role/:email", h.HandleGetRole)
}

// HandleRegister handles first-time registration of the authenticated
// principal.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(user); err != nil {
		return respondValidationError(c, err)
	}

	stored, err := h.userService.Register(&user, middleware.Principal(c))
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User saved successfully!",
		"result":  stored,
	})
}

// HandleListUsers returns all users.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.userService.List()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return respondError(c, err)
	}
	return c.JSON(users)
}

// RoleUpdateRequest represents the request body for a role change.
type RoleUpdateRequest struct {
	Role string `json:"role" validate:"required"`
}

// HandleSetRole changes the role of the user identified by the path ID.
func (h *UserHandler) HandleSetRole(c *fiber.Ctx) error {
	userID := c.Params("id")

	var req RoleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing role update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}
	if !models.ValidRole(req.Role) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid role: " + req.Role,
		})
	}

	modified, err := h.userService.SetRole(userID, req.Role, middleware.Principal(c))
	if err != nil {
		log.Printf("Error updating role for user %s: %v", userID, err)
		return respondError(c, err)
	}

	// Zero modified rows is not an error, just a report that nothing matched.
	return c.JSON(fiber.Map{
		"matchedCount":  modified,
		"modifiedCount": modified,
	})
}

// HandleGetRole returns the role of the given email, self-only.
func (h *UserHandler) HandleGetRole(c *fiber.Ctx) error {
	email := c.Params("email")

	role, err := h.userService.GetRole(email, middleware.Principal(c))
	if err != nil {
		log.Printf("Error getting role for %s: %v", email, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"role": role,
	})
}
