package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-social-backend/internal/delivery/http/middleware"
	v1 "go-social-backend/internal/delivery/http/v1"
	"go-social-backend/internal/domain"
	"go-social-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Signup(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password, name)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockAuthUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockAuthUsecase) GetCurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthUsecase) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	return m.Called(ctx, userID, currentPassword, newPassword).Error(0)
}

func newAuthRouter(authUC domain.AuthUsecase, tokens *auth.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())

	api := r.Group("/api")
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))
	v1.NewAuthHandler(api, protected, authUC)
	return r
}

func TestMe(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret-at-least-32-bytes-long!!")

	t.Run("Should return the authenticated user", func(t *testing.T) {
		mockUC := new(MockAuthUsecase)
		r := newAuthRouter(mockUC, tokens)

		mockUC.On("GetCurrentUser", mock.Anything, int64(42)).Return(&domain.User{ID: 42, Username: "alice", Email: "alice@example.com"}, nil)

		token, err := tokens.Issue("42")
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"alice"`)
		mockUC.AssertExpectations(t)
	})

	t.Run("Should reject an unauthenticated request", func(t *testing.T) {
		mockUC := new(MockAuthUsecase)
		r := newAuthRouter(mockUC, tokens)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockUC.AssertNotCalled(t, "GetCurrentUser", mock.Anything, mock.Anything)
	})
}
