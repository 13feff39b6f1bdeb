package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/eslsoft/jyutcollab/internal/editor"
	"github.com/eslsoft/jyutcollab/internal/infrastructure/config"
	"github.com/eslsoft/jyutcollab/internal/usecase"
)

// NewRouter assembles the REST API. Reads are public; every mutation goes
// through the auth middleware.
func NewRouter(
	cfg *config.Config,
	auth usecase.AuthUsecase,
	entries usecase.EntryUsecase,
	reviews usecase.ReviewUsecase,
	histories usecase.HistoryUsecase,
	suggestions editor.SuggestionService,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.Server.CORSOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	authHandler := NewAuthHandler(auth)
	entryHandler := NewEntryHandler(entries)
	reviewHandler := NewReviewHandler(reviews)
	historyHandler := NewHistoryHandler(histories)
	aiHandler := NewAIHandler(suggestions)

	api := router.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/entries", entryHandler.List)
	api.GET("/entries/check-duplicate", entryHandler.CheckDuplicate)
	api.GET("/entries/:id", entryHandler.Get)
	api.GET("/entries/:id/histories", historyHandler.ListByEntry)

	authed := api.Group("", Authenticated(auth))
	{
		authed.GET("/auth/me", authHandler.Me)
		authed.PUT("/users/:id/dialects", authHandler.GrantDialects)

		authed.POST("/entries", entryHandler.Create)
		authed.PATCH("/entries/:id", entryHandler.Update)
		authed.DELETE("/entries/:id", entryHandler.Delete)
		authed.POST("/entries/:id/submit", entryHandler.Submit)

		authed.GET("/reviews", reviewHandler.ListPending)
		authed.POST("/reviews/:id/approve", reviewHandler.Approve)
		authed.POST("/reviews/:id/reject", reviewHandler.Reject)

		authed.GET("/histories", historyHandler.List)
		authed.POST("/histories/:id/revert", historyHandler.Revert)

		authed.POST("/ai/definitions", aiHandler.SuggestDefinition)
		authed.POST("/ai/categorize", aiHandler.Categorize)
		authed.POST("/ai/examples", aiHandler.SuggestExamples)
	}

	return router
}
