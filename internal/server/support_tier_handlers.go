package server

import (
	"uplift/internal/models"

	"github.com/gofiber/fiber/v2"
)

const maxSupportTiers = 3

// AddSupportTier handles POST /petitions/:id/supportTiers
func (s *Server) AddSupportTier(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	petitionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req supportTierRequest
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
	if petition.OwnerID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Only the owner may add support tiers"))
	}

	count, err := s.tierRepo.CountForPetition(ctx, petitionID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if count >= maxSupportTiers {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("A petition may have at most 3 support tiers"))
	}

	taken, err := s.tierRepo.TitleExists(ctx, petitionID, req.Title, 0)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if taken {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Support tier title already in use for this petition"))
	}

	tier := &models.SupportTier{
		PetitionID:  petitionID,
		Title:       req.Title,
		Description: req.Description,
		Cost:        *req.Cost,
	}
	if createErr := s.tierRepo.Create(ctx, tier); createErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, createErr)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"supportTierId": tier.ID,
	})
}

// EditSupportTier handles PATCH /petitions/:id/supportTiers/:tierId
func (s *Server) EditSupportTier(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	petitionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	tierID, err := s.parseID(c, "tierId")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Cost        *int    `json:"cost"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	petition, err := s.petitionRepo.GetByID(ctx, petitionID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	if petition.OwnerID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Only the owner may edit support tiers"))
	}

	tier, err := s.tierRepo.GetByID(ctx, tierID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	if tier.PetitionID != petitionID {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Support tier", tierID))
	}

	if req.Title == nil && req.Description == nil && req.Cost == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No fields provided for update"))
	}

	supported, err := s.tierRepo.HasSupporters(ctx, tierID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if supported {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Cannot edit a support tier that has supporters"))
	}

	if req.Title != nil {
		if *req.Title == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Title must not be empty"))
		}
		taken, lookupErr := s.tierRepo.TitleExists(ctx, petitionID, *req.Title, tierID)
		if lookupErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, lookupErr)
		}
		if taken {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Support tier title already in use for this petition"))
		}
		tier.Title = *req.Title
	}
	if req.Description != nil {
		if *req.Description == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Description must not be empty"))
		}
		tier.Description = *req.Description
	}
	if req.Cost != nil {
		if *req.Cost < 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Cost must be non-negative"))
		}
		tier.Cost = *req.Cost
	}

	if updateErr := s.tierRepo.Update(ctx, tier); updateErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, updateErr)
	}

	return c.SendStatus(fiber.StatusOK)
}

// DeleteSupportTier handles DELETE /petitions/:id/supportTiers/:tierId
func (s *Server) DeleteSupportTier(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	petitionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	tierID, err := s.parseID(c, "tierId")
	if err != nil {
		return nil
	}

	petition, err := s.petitionRepo.GetByID(ctx, petitionID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	if petition.OwnerID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Only the owner may delete support tiers"))
	}

	tier, err := s.tierRepo.GetByID(ctx, tierID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	if tier.PetitionID != petitionID {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Support tier", tierID))
	}

	supported, err := s.tierRepo.HasSupporters(ctx, tierID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if supported {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Cannot delete a support tier that has supporters"))
	}

	count, err := s.tierRepo.CountForPetition(ctx, petitionID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if count <= 1 {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Cannot delete the only support tier of a petition"))
	}

	if deleteErr := s.tierRepo.Delete(ctx, tierID); deleteErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, deleteErr)
	}

	return c.SendStatus(fiber.StatusOK)
}
