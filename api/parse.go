package api

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/Drolfothesgnir/mfm/cache"
	"github.com/Drolfothesgnir/mfm/mfm"
	"github.com/gin-gonic/gin"
)

type ParseRequest struct {
	// empty text is valid, only a missing one is rejected
	Text      *string `json:"text" binding:"required"`
	NestLimit *int    `json:"nest_limit" binding:"omitempty,gte=0"`
}

// Entities lists what a post references, everything in document order without duplicates.
type Entities struct {
	Mentions   []string `json:"mentions"`
	Hashtags   []string `json:"hashtags"`
	EmojiCodes []string `json:"emoji_codes"`
	URLs       []string `json:"urls"`
}

type ParseResponse struct {
	Nodes     []mfm.SerializableNode `json:"nodes"`
	Canonical string                 `json:"canonical"`
	Entities  Entities               `json:"entities"`
	Cached    bool                   `json:"cached"`
}

func (s *Service) parse(ctx *gin.Context) {
	var req ParseRequest
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

	nestLimit := s.config.DefaultNestLimit
	if req.NestLimit != nil {
		nestLimit = *req.NestLimit
	}

	if nestLimit > s.config.MaxNestLimit {
		errField := ErrorField{"nest_limit", getBindingErrorMessage("lte")}
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(ErrInvalidParams, errField))
		return
	}

	key := cache.Key(cache.ModeFull, nestLimit, *req.Text)

	tree, cached := s.cachedTree(ctx, key)
	if !cached {
		tree = mfm.ParseWithNestLimit(*req.Text, nestLimit)
	}

	nodes := mfm.Serialize(tree)
	if !cached {
		s.saveTree(ctx, key, nodes)
	}

	ctx.JSON(http.StatusOK, ParseResponse{
		Nodes:     nodes,
		Canonical: mfm.ToString(tree),
		Entities:  collectEntities(tree),
		Cached:    cached,
	})
}

// checkTextLength enforces MAX_INPUT_LENGTH, counted in runes.
func (s *Service) checkTextLength(text string) (ErrorField, bool) {
	if utf8.RuneCountInString(text) > s.config.MaxInputLength {
		return ErrorField{"text", getBindingErrorMessage("max")}, false
	}
	return ErrorField{}, true
}

// cachedTree returns the tree stored under key. The cache is best effort: errors are logged
// and reported as a miss, so the caller parses the text again.
func (s *Service) cachedTree(ctx *gin.Context, key string) ([]mfm.Node, bool) {
	entry, ok := s.lookup(ctx, key)
	if !ok {
		return nil, false
	}

	tree, err := mfm.Decode(entry.Nodes)
	if err != nil {
		requestLogger(ctx).Warn().Err(err).Str("key", key).Msg("cached tree is corrupt")
		return nil, false
	}

	return tree, true
}

func (s *Service) lookup(ctx *gin.Context, key string) (*cache.Entry, bool) {
	entry, err := s.cache.GetParsed(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) && !errors.Is(err, context.Canceled) {
			requestLogger(ctx).Warn().Err(err).Str("key", key).Msg("cannot read the cache")
		}
		return nil, false
	}
	return entry, true
}

func (s *Service) saveTree(ctx *gin.Context, key string, nodes []mfm.SerializableNode) {
	entry := cache.Entry{
		Nodes:    nodes,
		CachedAt: time.Now().UTC(),
	}

	if err := s.cache.SaveParsed(ctx, key, entry, s.config.CacheTTL); err != nil {
		requestLogger(ctx).Warn().Err(err).Str("key", key).Msg("cannot save the parsed tree")
	}
}

func collectEntities(tree []mfm.Node) Entities {
	entities := Entities{
		Mentions:   []string{},
		Hashtags:   []string{},
		EmojiCodes: []string{},
		URLs:       []string{},
	}

	for _, m := range mfm.Collect[mfm.Mention](tree) {
		entities.Mentions = appendUnique(entities.Mentions, m.Acct)
	}
	for _, h := range mfm.Collect[mfm.Hashtag](tree) {
		entities.Hashtags = appendUnique(entities.Hashtags, h.Hashtag)
	}
	for _, e := range mfm.Collect[mfm.EmojiCode](tree) {
		entities.EmojiCodes = appendUnique(entities.EmojiCodes, e.Name)
	}

	// bare urls and link targets share one list
	mfm.Inspect(tree, func(n mfm.Node) bool {
		switch n := n.(type) {
		case mfm.URL:
			entities.URLs = appendUnique(entities.URLs, n.URL)
		case mfm.Link:
			entities.URLs = appendUnique(entities.URLs, n.URL)
		}
		return true
	})

	return entities
}

func appendUnique(list []string, value string) []string {
	if slices.Contains(list, value) {
		return list
	}
	return append(list, value)
}
