package server

import (
	"uplift/internal/models"
	"uplift/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// GetUserImage handles GET /users/:id/image
func (s *Server) GetUserImage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	if user.ImageFilename == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Image for user", id))
	}

	return s.serveImage(c, *user.ImageFilename)
}

// SetUserImage handles PUT /users/:id/image
func (s *Server) SetUserImage(c *fiber.Ctx) error {
	ctx := c.Context()
	requesterID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	if user.ID != requesterID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only change your own image"))
	}

	filename, status, err := s.storeImageBody(c)
	if err != nil {
		return nil
	}

	previous := user.ImageFilename
	if setErr := s.userRepo.SetImageFilename(ctx, id, &filename); setErr != nil {
		_ = s.images.Remove(filename)
		return models.RespondWithError(c, fiber.StatusInternalServerError, setErr)
	}
	if previous != nil {
		_ = s.images.Remove(*previous)
		status = fiber.StatusOK
	}

	return c.SendStatus(status)
}

// DeleteUserImage handles DELETE /users/:id/image
func (s *Server) DeleteUserImage(c *fiber.Ctx) error {
	ctx := c.Context()
	requesterID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	if user.ID != requesterID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only delete your own image"))
	}
	if user.ImageFilename == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Image for user", id))
	}

	if setErr := s.userRepo.SetImageFilename(ctx, id, nil); setErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, setErr)
	}
	_ = s.images.Remove(*user.ImageFilename)

	return c.SendStatus(fiber.StatusOK)
}

// GetPetitionImage handles GET /petitions/:id/image
func (s *Server) GetPetitionImage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	petition, err := s.petitionRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	if petition.ImageFilename == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Image for petition", id))
	}

	return s.serveImage(c, *petition.ImageFilename)
}

// SetPetitionImage handles PUT /petitions/:id/image
func (s *Server) SetPetitionImage(c *fiber.Ctx) error {
	ctx := c.Context()
	requesterID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	petition, err := s.petitionRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	if petition.OwnerID != requesterID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Only the owner may change the hero image"))
	}

	filename, status, err := s.storeImageBody(c)
	if err != nil {
		return nil
	}

	previous := petition.ImageFilename
	if setErr := s.petitionRepo.SetImageFilename(ctx, id, &filename); setErr != nil {
		_ = s.images.Remove(filename)
		return models.RespondWithError(c, fiber.StatusInternalServerError, setErr)
	}
	if previous != nil {
		_ = s.images.Remove(*previous)
		status = fiber.StatusOK
	}

	return c.SendStatus(status)
}

// DeletePetitionImage handles DELETE /petitions/:id/image
func (s *Server) DeletePetitionImage(c *fiber.Ctx) error {
	ctx := c.Context()
	requesterID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	petition, err := s.petitionRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	if petition.OwnerID != requesterID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Only the owner may delete the hero image"))
	}
	if petition.ImageFilename == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Image for petition", id))
	}

	if setErr := s.petitionRepo.SetImageFilename(ctx, id, nil); setErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, setErr)
	}
	_ = s.images.Remove(*petition.ImageFilename)

	return c.SendStatus(fiber.StatusOK)
}

// serveImage writes a stored image as the response body with its content type.
func (s *Server) serveImage(c *fiber.Ctx, filename string) error {
	content, err := s.images.Read(filename)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Image file", filename))
	}
	c.Set(fiber.HeaderContentType, storage.ContentTypeForFilename(filename))
	return c.Status(fiber.StatusOK).Send(content)
}

// storeImageBody validates the request content type and body, writes the
// image to disk, and returns the new filename. On failure the 400 response is
// already written and errResponseWritten is returned.
func (s *Server) storeImageBody(c *fiber.Ctx) (string, int, error) {
	ext, ok := storage.ExtensionForContentType(c.Get(fiber.HeaderContentType))
	if !ok {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content-Type must be image/png, image/jpeg or image/gif"))
		return "", 0, errResponseWritten
	}

	content := c.Body()
	if len(content) == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image body is required"))
		return "", 0, errResponseWritten
	}

	filename, err := s.images.Save(ext, content)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
		return "", 0, errResponseWritten
	}

	return filename, fiber.StatusCreated, nil
}
