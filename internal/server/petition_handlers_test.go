package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"uplift/internal/config"
	"uplift/internal/models"
	"uplift/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPetitionRepository is a mock of the PetitionRepository interface
type MockPetitionRepository struct {
	mock.Mock
}

func (m *MockPetitionRepository) List(ctx context.Context, filter repository.PetitionFilter, sort repository.PetitionSort, page repository.PetitionPage) (*models.PetitionList, error) {
	args := m.Called(ctx, filter, sort, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PetitionList), args.Error(1)
}

func (m *MockPetitionRepository) GetDetail(ctx context.Context, id uint) (*models.PetitionDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PetitionDetail), args.Error(1)
}

func (m *MockPetitionRepository) GetByID(ctx context.Context, id uint) (*models.Petition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Petition), args.Error(1)
}

func (m *MockPetitionRepository) TitleExists(ctx context.Context, title string, excludeID uint) (bool, error) {
	args := m.Called(ctx, title, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPetitionRepository) HasSupporters(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPetitionRepository) Create(ctx context.Context, petition *models.Petition) error {
	args := m.Called(ctx, petition)
	return args.Error(0)
}

func (m *MockPetitionRepository) Update(ctx context.Context, petition *models.Petition) error {
	args := m.Called(ctx, petition)
	return args.Error(0)
}

func (m *MockPetitionRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPetitionRepository) SetImageFilename(ctx context.Context, id uint, filename *string) error {
	args := m.Called(ctx, id, filename)
	return args.Error(0)
}

// MockCategoryRepository is a mock of the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockSupportTierRepository is a mock of the SupportTierRepository interface
type MockSupportTierRepository struct {
	mock.Mock
}

func (m *MockSupportTierRepository) GetByID(ctx context.Context, id uint) (*models.SupportTier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SupportTier), args.Error(1)
}

func (m *MockSupportTierRepository) CountForPetition(ctx context.Context, petitionID uint) (int64, error) {
	args := m.Called(ctx, petitionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupportTierRepository) TitleExists(ctx context.Context, petitionID uint, title string, excludeID uint) (bool, error) {
	args := m.Called(ctx, petitionID, title, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupportTierRepository) HasSupporters(ctx context.Context, tierID uint) (bool, error) {
	args := m.Called(ctx, tierID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupportTierRepository) Create(ctx context.Context, tier *models.SupportTier) error {
	args := m.Called(ctx, tier)
	return args.Error(0)
}

func (m *MockSupportTierRepository) Update(ctx context.Context, tier *models.SupportTier) error {
	args := m.Called(ctx, tier)
	return args.Error(0)
}

func (m *MockSupportTierRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSupporterRepository is a mock of the SupporterRepository interface
type MockSupporterRepository struct {
	mock.Mock
}

func (m *MockSupporterRepository) ListForPetition(ctx context.Context, petitionID uint) ([]models.SupporterDetail, error) {
	args := m.Called(ctx, petitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SupporterDetail), args.Error(1)
}

func (m *MockSupporterRepository) Exists(ctx context.Context, userID, tierID uint) (bool, error) {
	args := m.Called(ctx, userID, tierID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupporterRepository) Create(ctx context.Context, supporter *models.Supporter) error {
	args := m.Called(ctx, supporter)
	return args.Error(0)
}

// petitionTestDeps bundles the mocked repositories behind a Server.
type petitionTestDeps struct {
	users      *MockUserRepository
	categories *MockCategoryRepository
	petitions  *MockPetitionRepository
	tiers      *MockSupportTierRepository
	supporters *MockSupporterRepository
}

func newPetitionTestServer() (*Server, *petitionTestDeps) {
	deps := &petitionTestDeps{
		users:      new(MockUserRepository),
		categories: new(MockCategoryRepository),
		petitions:  new(MockPetitionRepository),
		tiers:      new(MockSupportTierRepository),
		supporters: new(MockSupporterRepository),
	}
	s := &Server{
		config:        &config.Config{TokenSecret: "test_secret", Env: "test"},
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		userRepo:      deps.users,
		categoryRepo:  deps.categories,
		petitionRepo:  deps.petitions,
		tierRepo:      deps.tiers,
		supporterRepo: deps.supporters,
	}
	return s, deps
}

// authAs registers a GetByToken expectation so requests carrying the returned
// header value authenticate as the given user.
func (d *petitionTestDeps) authAs(userID uint) string {
	token := "tok-test"
	d.users.On("GetByToken", mock.Anything, token).
		Return(&models.User{ID: userID}, nil)
	return token
}

func overviewFixture(id uint, title string) models.PetitionOverview {
	return models.PetitionOverview{
		PetitionID:         id,
		Title:              title,
		CategoryID:         1,
		OwnerID:            2,
		OwnerFirstName:     "Olive",
		OwnerLastName:      "Owner",
		NumberOfSupporters: 4,
		CreationDate:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		SupportingCost:     10,
	}
}

func TestGetPetitions(t *testing.T) {
	t.Run("Default listing", func(t *testing.T) {
		s, deps := newPetitionTestServer()
		deps.petitions.On("List", mock.Anything, mock.Anything,
			repository.SortCreatedAsc, mock.Anything).
			Return(&models.PetitionList{
				Petitions: []models.PetitionOverview{overviewFixture(1, "Save the reefs")},
				Count:     1,
			}, nil)

		app := fiber.New()
		app.Get("/petitions", s.GetPetitions)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/petitions", nil))
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var list models.PetitionList
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
		assert.Equal(t, int64(1), list.Count)
		assert.Len(t, list.Petitions, 1)
		assert.Equal(t, "Save the reefs", list.Petitions[0].Title)
	})

	t.Run("Filters are passed through", func(t *testing.T) {
		s, deps := newPetitionTestServer()
		cost := 20
		owner := uint(3)
		wantFilter := repository.PetitionFilter{
			Query:          "reef",
			CategoryIDs:    []uint{1, 2},
			SupportingCost: &cost,
			OwnerID:        &owner,
		}
		wantPage := repository.PetitionPage{StartIndex: 5}
		deps.petitions.On("List", mock.Anything, wantFilter,
			repository.SortCostDesc, wantPage).
			Return(&models.PetitionList{
				Petitions: []models.PetitionOverview{overviewFixture(2, "Reef fund")},
				Count:     12,
			}, nil)

		app := fiber.New()
		app.Get("/petitions", s.GetPetitions)

		target := "/petitions?q=reef&categoryIds=1,2&supportingCost=20&ownerId=3&sortBy=COST_DESC&startIndex=5"
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		deps.petitions.AssertExpectations(t)
	})

	t.Run("Empty filtered result is 404", func(t *testing.T) {
		s, deps := newPetitionTestServer()
		deps.petitions.On("List", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&models.PetitionList{Petitions: []models.PetitionOverview{}, Count: 0}, nil)

		app := fiber.New()
		app.Get("/petitions", s.GetPetitions)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/petitions?q=zzz", nil))
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Invalid sortBy is 400", func(t *testing.T) {
		s, _ := newPetitionTestServer()
		app := fiber.New()
		app.Get("/petitions", s.GetPetitions)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/petitions?sortBy=RANDOM", nil))
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Negative startIndex is 400", func(t *testing.T) {
		s, _ := newPetitionTestServer()
		app := fiber.New()
		app.Get("/petitions", s.GetPetitions)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/petitions?startIndex=-1", nil))
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetPetition(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s, deps := newPetitionTestServer()
		detail := &models.PetitionDetail{
			PetitionOverview: overviewFixture(1, "Save the reefs"),
			Description:      "Restore coral habitats",
			MoneyRaised:      40,
			SupportTiers: []models.SupportTier{
				{ID: 1, Title: "Bronze", Description: "Thanks", Cost: 10},
			},
		}
		deps.petitions.On("GetDetail", mock.Anything, uint(1)).Return(detail, nil)

		app := fiber.New()
		app.Get("/petitions/:id", s.GetPetition)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/petitions/1", nil))
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.PetitionDetail
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, 40, got.MoneyRaised)
		assert.Len(t, got.SupportTiers, 1)
	})

	t.Run("Not found", func(t *testing.T) {
		s, deps := newPetitionTestServer()
		deps.petitions.On("GetDetail", mock.Anything, uint(99)).
			Return(nil, models.NewNotFoundError("Petition", uint(99)))

		app := fiber.New()
		app.Get("/petitions/:id", s.GetPetition)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/petitions/99", nil))
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Database failure is not a 404", func(t *testing.T) {
		s, deps := newPetitionTestServer()
		deps.petitions.On("GetDetail", mock.Anything, uint(1)).
			Return(nil, models.NewInternalError(errors.New("connection refused")))

		app := fiber.New()
		app.Get("/petitions/:id", s.GetPetition)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/petitions/1", nil))
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestGetCategories(t *testing.T) {
	s, deps := newPetitionTestServer()
	deps.categories.On("List", mock.Anything).Return([]models.Category{
		{ID: 1, Name: "Animal Welfare"},
		{ID: 2, Name: "Environment"},
	}, nil)

	app := fiber.New()
	app.Get("/petitions/categories", s.GetCategories)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/petitions/categories", nil))
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var categories []models.Category
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&categories))
	assert.Len(t, categories, 2)
}

func TestCreatePetition(t *testing.T) {
	validBody := func() map[string]interface{} {
		return map[string]interface{}{
			"title":       "Save the reefs",
			"description": "Restore coral habitats",
			"categoryId":  1,
			"supportTiers": []map[string]interface{}{
				{"title": "Bronze", "description": "Thanks", "cost": 10},
			},
		}
	}

	tests := []struct {
		name           string
		body           map[string]interface{}
		mockSetup      func(deps *petitionTestDeps)
		expectedStatus int
	}{
		{
			name: "Success",
			body: validBody(),
			mockSetup: func(deps *petitionTestDeps) {
				deps.categories.On("Exists", mock.Anything, uint(1)).Return(true, nil)
				deps.petitions.On("TitleExists", mock.Anything, "Save the reefs", uint(0)).
					Return(false, nil)
				deps.petitions.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Free tier has zero cost",
			body: func() map[string]interface{} {
				b := validBody()
				b["supportTiers"] = []map[string]interface{}{
					{"title": "Free", "description": "Moral support", "cost": 0},
				}
				return b
			}(),
			mockSetup: func(deps *petitionTestDeps) {
				deps.categories.On("Exists", mock.Anything, uint(1)).Return(true, nil)
				deps.petitions.On("TitleExists", mock.Anything, "Save the reefs", uint(0)).
					Return(false, nil)
				deps.petitions.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Unknown category",
			body: validBody(),
			mockSetup: func(deps *petitionTestDeps) {
				deps.categories.On("Exists", mock.Anything, uint(1)).Return(false, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate title",
			body: validBody(),
			mockSetup: func(deps *petitionTestDeps) {
				deps.categories.On("Exists", mock.Anything, uint(1)).Return(true, nil)
				deps.petitions.On("TitleExists", mock.Anything, "Save the reefs", uint(0)).
					Return(true, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "No support tiers",
			body: func() map[string]interface{} {
				b := validBody()
				b["supportTiers"] = []map[string]interface{}{}
				return b
			}(),
			mockSetup:      func(deps *petitionTestDeps) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Four support tiers",
			body: func() map[string]interface{} {
				b := validBody()
				b["supportTiers"] = []map[string]interface{}{
					{"title": "A", "description": "a", "cost": 1},
					{"title": "B", "description": "b", "cost": 2},
					{"title": "C", "description": "c", "cost": 3},
					{"title": "D", "description": "d", "cost": 4},
				}
				return b
			}(),
			mockSetup:      func(deps *petitionTestDeps) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate tier titles in request",
			body: func() map[string]interface{} {
				b := validBody()
				b["supportTiers"] = []map[string]interface{}{
					{"title": "Bronze", "description": "a", "cost": 1},
					{"title": "Bronze", "description": "b", "cost": 2},
				}
				return b
			}(),
			mockSetup: func(deps *petitionTestDeps) {
				deps.categories.On("Exists", mock.Anything, uint(1)).Return(true, nil)
				deps.petitions.On("TitleExists", mock.Anything, "Save the reefs", uint(0)).
					Return(false, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "Negative tier cost",
			body: func() map[string]interface{} {
				b := validBody()
				b["supportTiers"] = []map[string]interface{}{
					{"title": "Bronze", "description": "a", "cost": -5},
				}
				return b
			}(),
			mockSetup:      func(deps *petitionTestDeps) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, deps := newPetitionTestServer()
			token := deps.authAs(5)
			tt.mockSetup(deps)

			app := fiber.New()
			app.Post("/petitions", s.AuthRequired(), s.CreatePetition)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/petitions", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(AuthHeader, token)

			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			deps.petitions.AssertExpectations(t)
		})
	}

	t.Run("Unauthenticated", func(t *testing.T) {
		s, _ := newPetitionTestServer()
		app := fiber.New()
		app.Post("/petitions", s.AuthRequired(), s.CreatePetition)

		body, _ := json.Marshal(validBody())
		req := httptest.NewRequest(http.MethodPost, "/petitions", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestEditPetition(t *testing.T) {
	storedPetition := func() *models.Petition {
		return &models.Petition{
			ID:          1,
			Title:       "Save the reefs",
			Description: "Restore coral habitats",
			CategoryID:  1,
			OwnerID:     5,
		}
	}

	tests := []struct {
		name           string
		authUserID     uint
		body           map[string]interface{}
		mockSetup      func(deps *petitionTestDeps)
		expectedStatus int
	}{
		{
			name:       "Owner renames petition",
			authUserID: 5,
			body:       map[string]interface{}{"title": "Save all reefs"},
			mockSetup: func(deps *petitionTestDeps) {
				deps.petitions.On("GetByID", mock.Anything, uint(1)).Return(storedPetition(), nil)
				deps.petitions.On("TitleExists", mock.Anything, "Save all reefs", uint(1)).
					Return(false, nil)
				deps.petitions.On("Update", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:       "Non-owner is forbidden",
			authUserID: 6,
			body:       map[string]interface{}{"title": "Save all reefs"},
			mockSetup: func(deps *petitionTestDeps) {
				deps.petitions.On("GetByID", mock.Anything, uint(1)).Return(storedPetition(), nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:       "New title already taken",
			authUserID: 5,
			body:       map[string]interface{}{"title": "Existing title"},
			mockSetup: func(deps *petitionTestDeps) {
				deps.petitions.On("GetByID", mock.Anything, uint(1)).Return(storedPetition(), nil)
				deps.petitions.On("TitleExists", mock.Anything, "Existing title", uint(1)).
					Return(true, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:       "Unknown category",
			authUserID: 5,
			body:       map[string]interface{}{"categoryId": 99},
			mockSetup: func(deps *petitionTestDeps) {
				deps.petitions.On("GetByID", mock.Anything, uint(1)).Return(storedPetition(), nil)
				deps.categories.On("Exists", mock.Anything, uint(99)).Return(false, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:       "No fields provided",
			authUserID: 5,
			body:       map[string]interface{}{},
			mockSetup: func(deps *petitionTestDeps) {
				deps.petitions.On("GetByID", mock.Anything, uint(1)).Return(storedPetition(), nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:       "Petition not found",
			authUserID: 5,
			body:       map[string]interface{}{"title": "Anything"},
			mockSetup: func(deps *petitionTestDeps) {
				deps.petitions.On("GetByID", mock.Anything, uint(1)).
					Return(nil, models.NewNotFoundError("Petition", uint(1)))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, deps := newPetitionTestServer()
			token := deps.authAs(tt.authUserID)
			tt.mockSetup(deps)

			app := fiber.New()
			app.Patch("/petitions/:id", s.AuthRequired(), s.EditPetition)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPatch, "/petitions/1", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(AuthHeader, token)

			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			deps.petitions.AssertExpectations(t)
		})
	}
}

func TestDeletePetition(t *testing.T) {
	storedPetition := func() *models.Petition {
		return &models.Petition{ID: 1, Title: "Save the reefs", OwnerID: 5}
	}

	tests := []struct {
		name           string
		authUserID     uint
		mockSetup      func(deps *petitionTestDeps)
		expectedStatus int
	}{
		{
			name:       "Owner deletes unsupported petition",
			authUserID: 5,
			mockSetup: func(deps *petitionTestDeps) {
				deps.petitions.On("GetByID", mock.Anything, uint(1)).Return(storedPetition(), nil)
				deps.petitions.On("HasSupporters", mock.Anything, uint(1)).Return(false, nil)
				deps.petitions.On("Delete", mock.Anything, uint(1)).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:       "Non-owner is forbidden",
			authUserID: 6,
			mockSetup: func(deps *petitionTestDeps) {
				deps.petitions.On("GetByID", mock.Anything, uint(1)).Return(storedPetition(), nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:       "Supported petition cannot be deleted",
			authUserID: 5,
			mockSetup: func(deps *petitionTestDeps) {
				deps.petitions.On("GetByID", mock.Anything, uint(1)).Return(storedPetition(), nil)
				deps.petitions.On("HasSupporters", mock.Anything, uint(1)).Return(true, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:       "Not found",
			authUserID: 5,
			mockSetup: func(deps *petitionTestDeps) {
				deps.petitions.On("GetByID", mock.Anything, uint(1)).
					Return(nil, models.NewNotFoundError("Petition", uint(1)))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, deps := newPetitionTestServer()
			token := deps.authAs(tt.authUserID)
			tt.mockSetup(deps)

			app := fiber.New()
			app.Delete("/petitions/:id", s.AuthRequired(), s.DeletePetition)

			req := httptest.NewRequest(http.MethodDelete, "/petitions/1", nil)
			req.Header.Set(AuthHeader, token)

			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			deps.petitions.AssertExpectations(t)
		})
	}
}
