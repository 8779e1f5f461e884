package server

import (
	"time"

	"uplift/internal/middleware"
	"uplift/internal/models"

	"github.com/gofiber/fiber/v2"
)

type supportTierRequest struct {
	Title       string `json:"title" validate:"required,max=128"`
	Description string `json:"description" validate:"required,max=1024"`
	Cost        *int   `json:"cost" validate:"required,gte=0"`
}

// GetPetitions handles GET /petitions
func (s *Server) GetPetitions(c *fiber.Ctx) error {
	filter, sort, page, err := s.parsePetitionQuery(c)
	if err != nil {
		return nil
	}

	list, err := s.petitionRepo.List(c.Context(), filter, sort, page)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// An empty filtered result is a 404, not an empty page.
	if len(list.Petitions) == 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Petitions", "matching filters"))
	}

	return c.JSON(list)
}

// GetPetition handles GET /petitions/:id
func (s *Server) GetPetition(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.petitionRepo.GetDetail(c.Context(), id)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "INTERNAL_ERROR" {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	return c.JSON(detail)
}

// GetCategories handles GET /petitions/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(categories)
}

// CreatePetition handles POST /petitions
func (s *Server) CreatePetition(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title        string               `json:"title" validate:"required,max=128"`
		Description  string               `json:"description" validate:"required,max=1024"`
		CategoryID   uint                 `json:"categoryId" validate:"required"`
		SupportTiers []supportTierRequest `json:"supportTiers" validate:"required,min=1,max=3,dive"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validateStruct(c, &req); err != nil {
		return nil
	}

	exists, err := s.categoryRepo.Exists(ctx, req.CategoryID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if !exists {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Category does not exist"))
	}

	taken, err := s.petitionRepo.TitleExists(ctx, req.Title, 0)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if taken {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Petition title already in use"))
	}

	// Tier titles must also be unique within the submitted petition.
	tierTitles := make(map[string]bool, len(req.SupportTiers))
	tiers := make([]models.SupportTier, 0, len(req.SupportTiers))
	for _, t := range req.SupportTiers {
		if tierTitles[t.Title] {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Support tier titles must be unique within the petition"))
		}
		tierTitles[t.Title] = true
		tiers = append(tiers, models.SupportTier{
			Title:       t.Title,
			Description: t.Description,
			Cost:        *t.Cost,
		})
	}

	petition := &models.Petition{
		Title:        req.Title,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		OwnerID:      userID,
		CreationDate: time.Now().UTC(),
		SupportTiers: tiers,
	}
	if createErr := s.petitionRepo.Create(ctx, petition); createErr != nil {
		if appErr, ok := createErr.(*models.AppError); ok && appErr.Code == "FORBIDDEN" {
			return models.RespondWithError(c, fiber.StatusForbidden, createErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, createErr)
	}

	middleware.PetitionsCreated.Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"petitionId": petition.ID,
	})
}

// EditPetition handles PATCH /petitions/:id
func (s *Server) EditPetition(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	petitionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		CategoryID  *uint   `json:"categoryId"`
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
			models.NewForbiddenError("Only the owner may edit a petition"))
	}
	if req.Title == nil && req.Description == nil && req.CategoryID == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No fields provided for update"))
	}

	if req.Title != nil {
		if *req.Title == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Title must not be empty"))
		}
		taken, lookupErr := s.petitionRepo.TitleExists(ctx, *req.Title, petitionID)
		if lookupErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, lookupErr)
		}
		if taken {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Petition title already in use"))
		}
		petition.Title = *req.Title
	}
	if req.Description != nil {
		if *req.Description == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Description must not be empty"))
		}
		petition.Description = *req.Description
	}
	if req.CategoryID != nil {
		exists, lookupErr := s.categoryRepo.Exists(ctx, *req.CategoryID)
		if lookupErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, lookupErr)
		}
		if !exists {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Category does not exist"))
		}
		petition.CategoryID = *req.CategoryID
	}

	if updateErr := s.petitionRepo.Update(ctx, petition); updateErr != nil {
		if appErr, ok := updateErr.(*models.AppError); ok && appErr.Code == "FORBIDDEN" {
			return models.RespondWithError(c, fiber.StatusForbidden, updateErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, updateErr)
	}

	return c.SendStatus(fiber.StatusOK)
}

// DeletePetition handles DELETE /petitions/:id
func (s *Server) DeletePetition(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	petitionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	petition, err := s.petitionRepo.GetByID(ctx, petitionID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	if petition.OwnerID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Only the owner may delete a petition"))
	}

	supported, err := s.petitionRepo.HasSupporters(ctx, petitionID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if supported {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Cannot delete a petition that has supporters"))
	}

	if deleteErr := s.petitionRepo.Delete(ctx, petitionID); deleteErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, deleteErr)
	}

	// Remove the hero image after the row is gone; the file is not part of
	// the transaction.
	if petition.ImageFilename != nil {
		_ = s.images.Remove(*petition.ImageFilename)
	}

	return c.SendStatus(fiber.StatusOK)
}
