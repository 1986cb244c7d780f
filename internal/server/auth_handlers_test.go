package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"postly/internal/auth"
	"postly/internal/config"
	"postly/internal/middleware"
	"postly/internal/models"
	"postly/web"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret-123456789012345678901234"

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDWithPosts(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfilePic(ctx context.Context, id uint, filename string) error {
	args := m.Called(ctx, id, filename)
	return args.Error(0)
}

// newTestServer builds a Server around mocks with a working view engine and
// the auth gate initialized.
func newTestServer(userRepo *MockUserRepository, postRepo *MockPostRepository) (*Server, *fiber.App) {
	s := &Server{
		config: &config.Config{JWTSecret: testSecret, UploadDir: "./testdata"},
		issuer: auth.NewTokenIssuer(testSecret),
	}
	if userRepo != nil {
		s.userRepo = userRepo
	}
	if postRepo != nil {
		s.postRepo = postRepo
	}
	middleware.InitMiddleware(s.issuer)

	app := fiber.New(fiber.Config{Views: web.Engine()})
	return s, app
}

func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func sessionCookie(t *testing.T, s *Server, email string, userID uint) *http.Cookie {
	t.Helper()
	token, err := s.issuer.Issue(email, userID)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.TokenCookie, Value: token}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		form           url.Values
		mockSetup      func(m *MockUserRepository)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			form: url.Values{
				"username": {"alice"},
				"name":     {"Alice Smith"},
				"age":      {"30"},
				"email":    {"alice@example.com"},
				"password": {"secret"},
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   "Account created successfully",
		},
		{
			name: "Missing field",
			form: url.Values{
				"username": {"alice"},
				"email":    {"alice@example.com"},
				"password": {"secret"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Non-numeric age",
			form: url.Values{
				"username": {"alice"},
				"name":     {"Alice Smith"},
				"age":      {"thirty"},
				"email":    {"alice@example.com"},
				"password": {"secret"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid email format",
			form: url.Values{
				"username": {"alice"},
				"name":     {"Alice Smith"},
				"age":      {"30"},
				"email":    {"not-an-email"},
				"password": {"secret"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate email",
			form: url.Values{
				"username": {"alice"},
				"name":     {"Alice Smith"},
				"age":      {"30"},
				"email":    {"taken@example.com"},
				"password": {"secret"},
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(models.NewValidationError("Email already registered"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Email already registered",
		},
		{
			name: "Storage failure",
			form: url.Values{
				"username": {"alice"},
				"name":     {"Alice Smith"},
				"age":      {"30"},
				"email":    {"alice@example.com"},
				"password": {"secret"},
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(models.NewStorageError(assert.AnError))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			if tt.mockSetup != nil {
				tt.mockSetup(mockRepo)
			}
			s, app := newTestServer(mockRepo, nil)
			app.Post("/register", s.Register)

			resp, err := app.Test(formRequest("/register", tt.form))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedBody != "" {
				body := readBody(t, resp)
				assert.Contains(t, body, tt.expectedBody)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	hashed, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	storedUser := &models.User{ID: 7, Email: "alice@example.com", Password: hashed}

	tests := []struct {
		name           string
		form           url.Values
		mockSetup      func(m *MockUserRepository)
		expectedStatus int
		expectCookie   bool
	}{
		{
			name: "Success sets cookie and redirects",
			form: url.Values{"email": {"alice@example.com"}, "password": {"correct-horse"}},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "alice@example.com").Return(storedUser, nil)
			},
			expectedStatus: http.StatusFound,
			expectCookie:   true,
		},
		{
			name: "Wrong password",
			form: url.Values{"email": {"alice@example.com"}, "password": {"wrong"}},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "alice@example.com").Return(storedUser, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown email",
			form: url.Values{"email": {"ghost@example.com"}, "password": {"whatever"}},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing credentials",
			form:           url.Values{"email": {"alice@example.com"}},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			if tt.mockSetup != nil {
				tt.mockSetup(mockRepo)
			}
			s, app := newTestServer(mockRepo, nil)
			app.Post("/login", s.Login)

			resp, err := app.Test(formRequest("/login", tt.form))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			cookie := findCookie(resp, middleware.TokenCookie)
			if tt.expectCookie {
				assert.Equal(t, "/profile", resp.Header.Get("Location"))
				require.NotNil(t, cookie, "login must set the session cookie")
				assert.True(t, cookie.HttpOnly, "session cookie must be http-only")
				assert.NotEmpty(t, cookie.Value)

				// The cookie must verify against the same issuer.
				claims, err := s.issuer.Verify(cookie.Value)
				require.NoError(t, err)
				assert.Equal(t, uint(7), claims.UserID)
				assert.Equal(t, "alice@example.com", claims.Email)
			} else {
				assert.Nil(t, cookie)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestLogout(t *testing.T) {
	s, app := newTestServer(nil, nil)
	app.Get("/logout", s.Logout)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(sessionCookie(t, s, "alice@example.com", 7))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	cookie := findCookie(resp, middleware.TokenCookie)
	require.NotNil(t, cookie, "logout must overwrite the session cookie")
	assert.Empty(t, cookie.Value)
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
