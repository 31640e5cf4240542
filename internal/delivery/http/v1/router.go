package v1

import (
	"net/http"

	"go-social-backend/config"
	"go-social-backend/internal/delivery/http/middleware"
	"go-social-backend/internal/delivery/http/response"
	"go-social-backend/internal/domain"
	"go-social-backend/pkg/auth"
	pkgredis "go-social-backend/pkg/redis"
	"go-social-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	AuthUC    domain.AuthUsecase
	PostUC    domain.PostUsecase
	ProfileUC domain.ProfileUsecase
	Tokens    *auth.TokenIssuer
	Config    *config.Config
	Redis     *redis.Client // nil when the cache is not configured
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	r.MaxMultipartMemory = int64(deps.Config.MaxUploadMB) << 20

	// Stored media is served straight from the uploads root
	r.Static("/uploads", deps.Config.UploadDir)

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		cacheStatus := "ok"
		if err := pkgredis.HealthCheck(c.Request.Context(), deps.Redis); err != nil {
			cacheStatus = "unavailable"
		}
		response.Success(c, http.StatusOK, "System operational", gin.H{"cache": cacheStatus})
	})

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))
	{
		NewAuthHandler(api, protected, deps.AuthUC)
		NewPostHandler(api, protected, deps.PostUC)
		NewProfileHandler(protected, deps.ProfileUC, deps.Config)
	}

	return r
}
