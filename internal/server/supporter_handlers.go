package server

import (
	"time"

	"uplift/internal/middleware"
	"uplift/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetSupporters handles GET /petitions/:id/supporters
func (s *Server) GetSupporters(c *fiber.Ctx) error {
	ctx := c.Context()
	petitionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.petitionRepo.GetByID(ctx, petitionID); err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	supporters, err := s.supporterRepo.ListForPetition(ctx, petitionID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(supporters)
}

// AddSupporter handles POST /petitions/:id/supporters
func (s *Server) AddSupporter(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	petitionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		SupportTierID uint   `json:"supportTierId" validate:"required"`
		Message       string `json:"message" validate:"max=512"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validateStruct(c, &req); err != nil {
		return nil
	}

	petition, err := s.petitionRepo.GetByID(ctx, petitionID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	if petition.OwnerID == userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Cannot support your own petition"))
	}

	tier, err := s.tierRepo.GetByID(ctx, req.SupportTierID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	if tier.PetitionID != petitionID {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Support tier", req.SupportTierID))
	}

	already, err := s.supporterRepo.Exists(ctx, userID, req.SupportTierID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if already {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Already supporting at this tier"))
	}

	supporter := &models.Supporter{
		PetitionID:    petitionID,
		SupportTierID: req.SupportTierID,
		UserID:        userID,
		Message:       req.Message,
		Timestamp:     time.Now().UTC(),
	}
	if createErr := s.supporterRepo.Create(ctx, supporter); createErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, createErr)
	}

	middleware.PledgesCreated.Inc()

	return c.SendStatus(fiber.StatusCreated)
}
