package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/brandlens/brandlens/plugin/ai/keywords"
	"github.com/brandlens/brandlens/server/service/theme"
	"github.com/brandlens/brandlens/store"
)

func brandIDFromParam(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("brand"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid brand id")
	}
	return int32(id), nil
}

// GetThemeGraph serves the stored theme graph for a brand. A brand without
// a graph yields empty node and link arrays, not an error.
func (s *APIV1Service) GetThemeGraph(c echo.Context) error {
	ctx := c.Request().Context()
	brandID, err := brandIDFromParam(c)
	if err != nil {
		return err
	}

	if s.ThemeService != nil {
		graph, err := s.ThemeService.Graph(ctx, brandID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to load theme graph").SetInternal(err)
		}
		return c.JSON(http.StatusOK, graph)
	}

	// Read-only path when AI is not configured.
	nodes, err := s.Store.ListThemeNodes(ctx, &store.FindThemeGraph{BrandID: brandID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load theme graph").SetInternal(err)
	}
	links, err := s.Store.ListThemeLinks(ctx, &store.FindThemeGraph{BrandID: brandID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load theme graph").SetInternal(err)
	}

	type nodeResponse struct {
		Keyword   string `json:"keyword"`
		Weight    int    `json:"weight"`
		Sentiment string `json:"sentiment"`
	}
	type linkResponse struct {
		Source string  `json:"source"`
		Target string  `json:"target"`
		Value  float64 `json:"value"`
	}
	response := struct {
		Nodes []nodeResponse `json:"nodes"`
		Links []linkResponse `json:"links"`
	}{
		Nodes: []nodeResponse{},
		Links: []linkResponse{},
	}
	for _, node := range nodes {
		response.Nodes = append(response.Nodes, nodeResponse{
			Keyword:   node.Keyword,
			Weight:    node.Weight,
			Sentiment: node.Sentiment,
		})
	}
	for _, link := range links {
		response.Links = append(response.Links, linkResponse{
			Source: link.Source,
			Target: link.Target,
			Value:  link.Value,
		})
	}
	return c.JSON(http.StatusOK, response)
}

// RegenerateThemeGraph rebuilds a brand's theme graph from its comments.
func (s *APIV1Service) RegenerateThemeGraph(c echo.Context) error {
	ctx := c.Request().Context()
	brandID, err := brandIDFromParam(c)
	if err != nil {
		return err
	}

	if s.ThemeService == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "AI is not configured")
	}

	graph, err := s.ThemeService.Regenerate(ctx, brandID)
	if err != nil {
		switch {
		case errors.Is(err, theme.ErrRunInProgress):
			return echo.NewHTTPError(http.StatusConflict, "a run is already in progress for this brand")
		case errors.Is(err, keywords.ErrInsufficientKeywords):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "could not generate enough keywords from the comments")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "theme graph generation failed").SetInternal(err)
		}
	}
	return c.JSON(http.StatusOK, graph)
}

// ListKeywords serves a brand's canonical keyword set.
func (s *APIV1Service) ListKeywords(c echo.Context) error {
	ctx := c.Request().Context()
	brandID, err := brandIDFromParam(c)
	if err != nil {
		return err
	}

	list, err := s.Store.ListKeywords(ctx, &store.FindKeyword{BrandID: &brandID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list keywords").SetInternal(err)
	}

	phrases := []string{}
	for _, keyword := range list {
		phrases = append(phrases, keyword.Phrase)
	}
	return c.JSON(http.StatusOK, map[string]any{"keywords": phrases})
}
