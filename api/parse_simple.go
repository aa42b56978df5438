package api

import (
	"net/http"

	"github.com/Drolfothesgnir/mfm/cache"
	"github.com/Drolfothesgnir/mfm/mfm"
	"github.com/gin-gonic/gin"
)

type ParseSimpleRequest struct {
	// empty text is valid, only a missing one is rejected
	Text *string `json:"text" binding:"required"`
}

type ParseSimpleResponse struct {
	Nodes  []mfm.SerializableNode `json:"nodes"`
	Cached bool                   `json:"cached"`
}

// parseSimple handles display names and other short texts, only emoji and plain text are recognised.
func (s *Service) parseSimple(ctx *gin.Context) {
	var req ParseSimpleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(
			http.StatusBadRequest,
			NewErrorResponse(ErrInvalidParams, ExtractErrorFields(err)...))
		return
	}

	if field, ok := s.checkTextLength(*req.Text); !ok {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(ErrInvalidParams, field))
		return
	}

	// the simple grammar has no nesting, the limit is fixed to zero in the key
	key := cache.Key(cache.ModeSimple, 0, *req.Text)

	// simple trees are returned as stored, there's nothing to derive from them
	if entry, ok := s.lookup(ctx, key); ok {
		ctx.JSON(http.StatusOK, ParseSimpleResponse{Nodes: entry.Nodes, Cached: true})
		return
	}

	nodes := mfm.SerializeSimple(mfm.ParseSimple(*req.Text))
	s.saveTree(ctx, key, nodes)

	ctx.JSON(http.StatusOK, ParseSimpleResponse{Nodes: nodes})
}
