// Package v1 exposes the JSON API.
package v1

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/brandlens/brandlens/internal/profile"
	"github.com/brandlens/brandlens/plugin/ai"
	"github.com/brandlens/brandlens/plugin/ai/themegraph"
	"github.com/brandlens/brandlens/server/service/theme"
	"github.com/brandlens/brandlens/store"
)

type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store

	// ThemeService is nil when AI is not configured; graph endpoints then
	// answer 503 for regeneration and serve stored graphs read-only.
	ThemeService *theme.Service
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store) *APIV1Service {
	service := &APIV1Service{
		Profile: profile,
		Store:   store,
	}

	if profile.IsAIEnabled() {
		aiConfig := ai.NewConfigFromProfile(profile)
		if err := aiConfig.Validate(); err != nil {
			slog.Warn("AI config invalid, theme regeneration disabled", "error", err)
			return service
		}
		embeddingService, err := ai.NewEmbeddingService(&aiConfig.Embedding)
		if err != nil {
			slog.Warn("embedding service init failed, theme regeneration disabled", "error", err)
			return service
		}
		llmService, err := ai.NewLLMService(&aiConfig.Chat)
		if err != nil {
			slog.Warn("chat service init failed, theme regeneration disabled", "error", err)
			return service
		}
		service.ThemeService = theme.NewService(
			store,
			embeddingService,
			llmService,
			aiConfig.Embedding.Model,
			themegraph.DefaultConfig(),
		)
	}

	return service
}

// RegisterRoutes registers all API v1 routes on the given Echo group.
func (s *APIV1Service) RegisterRoutes(g *echo.Group) {
	g.GET("/brands/:brand/graph", s.GetThemeGraph)
	g.POST("/brands/:brand/graph/regenerate", s.RegenerateThemeGraph)
	g.GET("/brands/:brand/keywords", s.ListKeywords)

	g.GET("/brands/:brand/comments", s.ListComments)
	g.POST("/brands/:brand/comments", s.CreateComment)
	g.DELETE("/comments/:uid", s.DeleteComment)
}
