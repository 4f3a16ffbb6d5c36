package handlers

import (
	"log"

	"contesthub/internal/middleware"
	"contesthub/internal/models"
	"contesthub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ContestHandler handles HTTP requests for contests and submissions.
type ContestHandler struct {
	contestService *services.ContestService
	validate       *validator.Validate
}

// NewContestHandler creates a new ContestHandler.
func NewContestHandler(contestService *services.ContestService) *ContestHandler {
	return &ContestHandler{
		contestService: contestService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the contest routes. The router is expected to
// carry the authentication middleware already.
func (h *ContestHandler) RegisterRoutes(router fiber.Router) {
	// The literal submissions segment has to be registered before the
	// :email/:role creation route, or it would be captured as a role claim.
	router.Post("/contests/:id/submissions", h.HandleAddSubmission)
	router.Post("/contests/:email/:role", h.HandleCreate)
	router.Get("/contests/:email/creator", h.HandleListByCreator)
	router.Get("/contests/:id/task", h.HandleGetByID)
	router.Patch("/contests/:id/:email/winner", h.HandleMarkWinner)
	router.Patch("/contests/:id/contest", h.HandleUpdateMetadata)
	router.Delete("/contests/:id/delete", h.HandleDelete)
}

// HandleCreate creates a new contest. The email and role path segments are
// client claims that the service checks against the verified principal and
// the principal's stored account.
func (h *ContestHandler) HandleCreate(c *fiber.Ctx) error {
	claimedEmail := c.Params("email")
	claimedRole := c.Params("role")

	var contest models.Contest
	if err := c.BodyParser(&contest); err != nil {
		log.Printf("Error parsing contest body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(contest); err != nil {
		return respondValidationError(c, err)
	}

	created, err := h.contestService.Create(&contest, claimedEmail, claimedRole, middleware.Principal(c))
	if err != nil {
		log.Printf("Error creating contest: %v", err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"id": created.ID,
	})
}

// HandleListByCreator returns the creator's own contests, newest first.
func (h *ContestHandler) HandleListByCreator(c *fiber.Ctx) error {
	creatorEmail := c.Params("email")

	contests, err := h.contestService.ListByCreator(creatorEmail, middleware.Principal(c))
	if err != nil {
		log.Printf("Error listing contests for %s: %v", creatorEmail, err)
		return respondError(c, err)
	}
	return c.JSON(contests)
}

// HandleGetByID returns the full contest document with all submissions.
func (h *ContestHandler) HandleGetByID(c *fiber.Ctx) error {
	contestID := c.Params("id")

	contest, err := h.contestService.GetByID(contestID)
	if err != nil {
		log.Printf("Error getting contest %s: %v", contestID, err)
		return respondError(c, err)
	}
	return c.JSON(contest)
}

// HandleAddSubmission enters the authenticated principal into a contest.
func (h *ContestHandler) HandleAddSubmission(c *fiber.Ctx) error {
	contestID := c.Params("id")

	var submission models.Submission
	if err := c.BodyParser(&submission); err != nil {
		log.Printf("Error parsing submission body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(submission); err != nil {
		return respondValidationError(c, err)
	}

	created, err := h.contestService.AddSubmission(contestID, &submission, middleware.Principal(c))
	if err != nil {
		log.Printf("Error adding submission to contest %s: %v", contestID, err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Submission saved successfully!",
		"result":  created,
	})
}

// HandleMarkWinner flags the submission of the participant in the path as
// the winner. A participant with no submission yields a zero-modified
// result, not an error.
func (h *ContestHandler) HandleMarkWinner(c *fiber.Ctx) error {
	contestID := c.Params("id")
	participantEmail := c.Params("email")

	modified, err := h.contestService.MarkWinner(contestID, participantEmail, middleware.Principal(c))
	if err != nil {
		log.Printf("Error marking winner for contest %s: %v", contestID, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"matchedCount":  modified,
		"modifiedCount": modified,
	})
}

// HandleUpdateMetadata updates a contest's metadata fields.
func (h *ContestHandler) HandleUpdateMetadata(c *fiber.Ctx) error {
	contestID := c.Params("id")

	var update models.ContestUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing contest update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(update); err != nil {
		return respondValidationError(c, err)
	}

	modified, err := h.contestService.UpdateMetadata(contestID, update, middleware.Principal(c))
	if err != nil {
		log.Printf("Error updating contest %s: %v", contestID, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"matchedCount":  modified,
		"modifiedCount": modified,
	})
}

// HandleDelete removes a contest.
func (h *ContestHandler) HandleDelete(c *fiber.Ctx) error {
	contestID := c.Params("id")

	deleted, err := h.contestService.Delete(contestID, middleware.Principal(c))
	if err != nil {
		log.Printf("Error deleting contest %s: %v", contestID, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"deletedCount": deleted,
	})
}
