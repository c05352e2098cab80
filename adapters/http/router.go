package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	"github.com/Yeralkhan06/MyProfile3/pkg/auth"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
)

type RouterDeps struct {
	Logger         logger.Logger
	ProfileHandler *ProfileHandler
	GitHubHandler  *GitHubHandler
	ResumeHandler  *ResumeHandler
	// AuthHandler and JWTService are nil when profile writes are open.
	AuthHandler *AuthHandler
	JWTService  *auth.JWTService
}

func NewRouter(deps RouterDeps) *gin.Engine {
	useJSONFieldNames()

	router := gin.New()
	router.Use(
		gin.Recovery(),
		CorrelationIDMiddleware(),
		RequestLogger(deps.Logger),
		TracingMiddleware(),
		MetricsMiddleware(),
		ErrorMiddleware(deps.Logger),
	)

	router.GET("/metrics", MetricsHandler())

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		api.GET("/profile", deps.ProfileHandler.GetProfile)
		if deps.JWTService != nil {
			api.PUT("/profile", AuthMiddleware(deps.JWTService, deps.Logger), deps.ProfileHandler.UpdateProfile)
		} else {
			api.PUT("/profile", deps.ProfileHandler.UpdateProfile)
		}

		api.GET("/github/repos/:username", deps.GitHubHandler.ListRepos)
		api.GET("/resume/pdf", deps.ResumeHandler.DownloadPDF)

		if deps.AuthHandler != nil {
			api.POST("/auth/login", deps.AuthHandler.Login)
		}
	}

	return router
}

// WithCORS wraps the engine so preflight requests are answered before gin routing.
func WithCORS(h http.Handler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "PUT", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", HeaderCorrelationID},
		ExposedHeaders:   []string{"Content-Disposition", HeaderCorrelationID},
		AllowCredentials: false,
		MaxAge:           300,
	})(h)
}
