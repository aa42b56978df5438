package api

import (
	"net/http"

	"github.com/Drolfothesgnir/mfm/mfm"
	"github.com/gin-gonic/gin"
)

type StringifyRequest struct {
	Nodes []mfm.SerializableNode `json:"nodes" binding:"required"`
}

type StringifyResponse struct {
	Text string `json:"text"`
}

// stringify prints a serialized tree back to markup, e.g. after a client edited the tree.
func (s *Service) stringify(ctx *gin.Context) {
	var req StringifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(
			http.StatusBadRequest,
			NewErrorResponse(ErrInvalidParams, ExtractErrorFields(err)...))
		return
	}

	tree, err := mfm.Decode(req.Nodes)
	if err != nil {
		ctx.JSON(
			http.StatusBadRequest,
			NewErrorResponse(ErrInvalidTree, treeErrorField("nodes", err)))
		return
	}

	ctx.JSON(http.StatusOK, StringifyResponse{Text: mfm.ToString(tree)})
}
