package server

import (
	"errors"
	"strconv"
	"strings"

	"uplift/internal/models"
	"uplift/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "tierId" -> "tier ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		return strings.ToLower(param[:len(param)-2]) + " ID"
	}
	return param
}

var validSorts = map[repository.PetitionSort]bool{
	repository.SortAlphabeticalAsc:  true,
	repository.SortAlphabeticalDesc: true,
	repository.SortCostAsc:          true,
	repository.SortCostDesc:         true,
	repository.SortCreatedAsc:       true,
	repository.SortCreatedDesc:      true,
}

// parsePetitionQuery parses the listing query parameters into a filter, sort
// and page. On any malformed parameter it writes a 400 response and returns
// errResponseWritten.
func (s *Server) parsePetitionQuery(c *fiber.Ctx) (repository.PetitionFilter, repository.PetitionSort, repository.PetitionPage, error) {
	var (
		filter repository.PetitionFilter
		page   repository.PetitionPage
	)
	sort := repository.SortCreatedAsc

	fail := func(msg string) (repository.PetitionFilter, repository.PetitionSort, repository.PetitionPage, error) {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(msg))
		return filter, sort, page, errResponseWritten
	}

	filter.Query = c.Query("q")

	// categoryIds may repeat (?categoryIds=1&categoryIds=2) or arrive
	// comma-separated; both are accepted.
	for _, raw := range c.Context().QueryArgs().PeekMulti("categoryIds") {
		for _, part := range strings.Split(string(raw), ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 32)
			if err != nil || id == 0 {
				return fail("Invalid categoryIds")
			}
			filter.CategoryIDs = append(filter.CategoryIDs, uint(id))
		}
	}

	if raw := c.Query("supportingCost"); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil || cost < 0 {
			return fail("Invalid supportingCost")
		}
		filter.SupportingCost = &cost
	}
	if raw := c.Query("ownerId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return fail("Invalid ownerId")
		}
		ownerID := uint(id)
		filter.OwnerID = &ownerID
	}
	if raw := c.Query("supporterId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return fail("Invalid supporterId")
		}
		supporterID := uint(id)
		filter.SupporterID = &supporterID
	}

	if raw := c.Query("sortBy"); raw != "" {
		candidate := repository.PetitionSort(raw)
		if !validSorts[candidate] {
			return fail("Invalid sortBy")
		}
		sort = candidate
	}

	if raw := c.Query("startIndex"); raw != "" {
		startIndex, err := strconv.Atoi(raw)
		if err != nil || startIndex < 0 {
			return fail("Invalid startIndex")
		}
		page.StartIndex = startIndex
	}
	if raw := c.Query("count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil || count < 0 {
			return fail("Invalid count")
		}
		page.Count = &count
	}

	return filter, sort, page, nil
}

// validateStruct runs the request DTO through the struct validator. On
// failure it writes a 400 response and returns errResponseWritten.
func (s *Server) validateStruct(c *fiber.Ctx, req interface{}) error {
	if err := s.validate.Struct(req); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request: "+err.Error()))
		return errResponseWritten
	}
	return nil
}
