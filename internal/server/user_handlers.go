package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"uplift/internal/models"
	"uplift/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register handles POST /users/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		FirstName string `json:"firstName" validate:"required,max=64"`
		LastName  string `json:"lastName" validate:"required,max=64"`
		Email     string `json:"email" validate:"required,email,max=256"`
		Password  string `json:"password" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validateStruct(c, &req); err != nil {
		return nil
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	// Email uniqueness maps to Forbidden, not Conflict
	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Email already in use"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashedPassword),
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		if appErr, ok := createErr.(*models.AppError); ok && appErr.Code == "FORBIDDEN" {
			return models.RespondWithError(c, fiber.StatusForbidden, createErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, createErr)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"userId": user.ID,
	})
}

// Login handles POST /users/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validateStruct(c, &req); err != nil {
		return nil
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Incorrect email or password"))
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Incorrect email or password"))
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	// Storing the token makes it the single active session; a second login
	// invalidates the previous token.
	if err := s.userRepo.SetToken(c.Context(), user.ID, token); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"userId": user.ID,
		"token":  token,
	})
}

// Logout handles POST /users/logout
func (s *Server) Logout(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Get(AuthHeader))
	if err := s.userRepo.ClearToken(c.Context(), token); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// GetUser handles GET /users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	profile := models.UserProfile{
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	// Email is only exposed to the user themselves.
	if requesterID, ok := s.optionalUserID(c); ok && requesterID == user.ID {
		profile.Email = user.Email
	}

	return c.JSON(profile)
}

// UpdateUser handles PATCH /users/:id
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	ctx := c.Context()
	requesterID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if id != requesterID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only edit your own profile"))
	}

	var req struct {
		Email           *string `json:"email"`
		FirstName       *string `json:"firstName"`
		LastName        *string `json:"lastName"`
		Password        *string `json:"password"`
		CurrentPassword *string `json:"currentPassword"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Email == nil && req.FirstName == nil && req.LastName == nil && req.Password == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No fields provided for update"))
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	if req.Email != nil {
		if vErr := validation.ValidateEmail(*req.Email); vErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(vErr.Error()))
		}
		if *req.Email != user.Email {
			existing, lookupErr := s.userRepo.GetByEmail(ctx, *req.Email)
			if lookupErr != nil {
				return models.RespondWithError(c, fiber.StatusInternalServerError, lookupErr)
			}
			if existing != nil {
				return models.RespondWithError(c, fiber.StatusForbidden,
					models.NewForbiddenError("Email already in use"))
			}
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		if vErr := validation.ValidateName("firstName", *req.FirstName); vErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(vErr.Error()))
		}
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		if vErr := validation.ValidateName("lastName", *req.LastName); vErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(vErr.Error()))
		}
		user.LastName = *req.LastName
	}
	if req.Password != nil {
		if req.CurrentPassword == nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("currentPassword is required to change password"))
		}
		if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*req.CurrentPassword)); cmpErr != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Incorrect current password"))
		}
		if vErr := validation.ValidatePassword(*req.Password); vErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(vErr.Error()))
		}
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(hashErr))
		}
		user.Password = string(hashed)
	}

	if updateErr := s.userRepo.Update(ctx, user); updateErr != nil {
		if appErr, ok := updateErr.(*models.AppError); ok && appErr.Code == "FORBIDDEN" {
			return models.RespondWithError(c, fiber.StatusForbidden, updateErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, updateErr)
	}

	return c.SendStatus(fiber.StatusOK)
}

// generateToken creates a signed session token for the given user ID.
func (s *Server) generateToken(userID uint) (string, error) {
	if s.config.TokenSecret == "" {
		return "", fmt.Errorf("token secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": "uplift-api",
		"iat": now.Unix(),
		"jti": uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.TokenSecret))
}
