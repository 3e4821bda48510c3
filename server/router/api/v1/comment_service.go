package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/brandlens/brandlens/plugin/ai/themegraph"
	"github.com/brandlens/brandlens/store"
)

type commentResponse struct {
	UID       string `json:"uid"`
	BrandID   int32  `json:"brandId"`
	Text      string `json:"text"`
	Sentiment string `json:"sentiment"`
	CreatedTs int64  `json:"createdTs"`
}

func convertComment(comment *store.Comment) commentResponse {
	return commentResponse{
		UID:       comment.UID,
		BrandID:   comment.BrandID,
		Text:      comment.Text,
		Sentiment: comment.Sentiment,
		CreatedTs: comment.CreatedTs,
	}
}

func (s *APIV1Service) ListComments(c echo.Context) error {
	ctx := c.Request().Context()
	brandID, err := brandIDFromParam(c)
	if err != nil {
		return err
	}

	list, err := s.Store.ListComments(ctx, &store.FindComment{BrandID: &brandID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list comments").SetInternal(err)
	}

	response := []commentResponse{}
	for _, comment := range list {
		response = append(response, convertComment(comment))
	}
	return c.JSON(http.StatusOK, response)
}

type createCommentRequest struct {
	Text      string `json:"text"`
	Sentiment string `json:"sentiment"`
}

type createCommentsRequest struct {
	Comments []createCommentRequest `json:"comments"`
}

// CreateComment ingests a batch of comments for a brand.
func (s *APIV1Service) CreateComment(c echo.Context) error {
	ctx := c.Request().Context()
	brandID, err := brandIDFromParam(c)
	if err != nil {
		return err
	}

	request := &createCommentsRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	if len(request.Comments) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one comment is required")
	}
	for _, item := range request.Comments {
		if strings.TrimSpace(item.Text) == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "comment text is required")
		}
		if item.Sentiment != "" && !themegraph.IsKnownSentiment(item.Sentiment) {
			return echo.NewHTTPError(http.StatusBadRequest, "sentiment must be positive, neutral or negative")
		}
	}

	created := []commentResponse{}
	for _, item := range request.Comments {
		comment, err := s.Store.CreateComment(ctx, &store.Comment{
			UID:       shortuuid.New(),
			BrandID:   brandID,
			Text:      item.Text,
			Sentiment: item.Sentiment,
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to create comment").SetInternal(err)
		}
		created = append(created, convertComment(comment))
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *APIV1Service) DeleteComment(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")
	if uid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "comment uid is required")
	}

	if err := s.Store.DeleteComment(ctx, &store.DeleteComment{UID: uid}); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "comment not found").SetInternal(err)
	}
	return c.NoContent(http.StatusNoContent)
}
