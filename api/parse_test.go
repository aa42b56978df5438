package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Drolfothesgnir/mfm/cache"
	mockcache "github.com/Drolfothesgnir/mfm/cache/mock"
	"github.com/Drolfothesgnir/mfm/mfm"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const parseText = "<b>hi</b> @ai #tag :fire: [site](https://example.com/a) https://example.com @ai"

type rawParseResponse struct {
	Nodes     json.RawMessage `json:"nodes"`
	Canonical string          `json:"canonical"`
	Entities  Entities        `json:"entities"`
	Cached    bool            `json:"cached"`
}

func requireParseResponse(t *testing.T, recorder *httptest.ResponseRecorder, text string, nestLimit int, cached bool) rawParseResponse {
	t.Helper()

	require.Equal(t, http.StatusOK, recorder.Code)

	var res rawParseResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

	tree := mfm.ParseWithNestLimit(text, nestLimit)
	want, err := mfm.MarshalJSON(tree)
	require.NoError(t, err)

	require.JSONEq(t, string(want), string(res.Nodes))
	require.Equal(t, mfm.ToString(tree), res.Canonical)
	require.Equal(t, cached, res.Cached)
	return res
}

func TestParse(t *testing.T) {
	key := cache.Key(cache.ModeFull, testConfig.DefaultNestLimit, parseText)

	testCases := []struct {
		name          string
		body          gin.H
		buildStubs    func(store *mockcache.MockStore)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			body: gin.H{"text": parseText},
			buildStubs: func(store *mockcache.MockStore) {
				store.EXPECT().
					GetParsed(gomock.Any(), gomock.Eq(key)).
					Times(1).
					Return(nil, cache.ErrCacheMiss)
				store.EXPECT().
					SaveParsed(gomock.Any(), gomock.Eq(key), gomock.Any(), gomock.Eq(testConfig.CacheTTL)).
					Times(1).
					DoAndReturn(func(_ any, _ string, entry cache.Entry, _ any) error {
						require.Equal(t, mfm.Serialize(mfm.Parse(parseText)), entry.Nodes)
						require.False(t, entry.CachedAt.IsZero())
						return nil
					})
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				res := requireParseResponse(t, recorder, parseText, testConfig.DefaultNestLimit, false)
				require.Equal(t, "**hi** @ai #tag :fire: [site](https://example.com/a) https://example.com @ai", res.Canonical)
				require.Equal(t, Entities{
					Mentions:   []string{"@ai"},
					Hashtags:   []string{"tag"},
					EmojiCodes: []string{"fire"},
					URLs:       []string{"https://example.com/a", "https://example.com"},
				}, res.Entities)
			},
		},
		{
			name: "CacheHit",
			body: gin.H{"text": parseText},
			buildStubs: func(store *mockcache.MockStore) {
				entry := &cache.Entry{Nodes: mfm.Serialize(mfm.Parse(parseText))}
				store.EXPECT().
					GetParsed(gomock.Any(), gomock.Eq(key)).
					Times(1).
					Return(entry, nil)
				store.EXPECT().
					SaveParsed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				res := requireParseResponse(t, recorder, parseText, testConfig.DefaultNestLimit, true)
				require.Equal(t, []string{"@ai"}, res.Entities.Mentions)
			},
		},
		{
			name: "CorruptCacheEntry",
			body: gin.H{"text": parseText},
			buildStubs: func(store *mockcache.MockStore) {
				entry := &cache.Entry{Nodes: []mfm.SerializableNode{{Type: "nope"}}}
				store.EXPECT().
					GetParsed(gomock.Any(), gomock.Eq(key)).
					Times(1).
					Return(entry, nil)
				store.EXPECT().
					SaveParsed(gomock.Any(), gomock.Eq(key), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				requireParseResponse(t, recorder, parseText, testConfig.DefaultNestLimit, false)
			},
		},
		{
			name: "CacheUnavailable",
			body: gin.H{"text": parseText},
			buildStubs: func(store *mockcache.MockStore) {
				store.EXPECT().
					GetParsed(gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil, errors.New("connection refused"))
				store.EXPECT().
					SaveParsed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(errors.New("connection refused"))
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				requireParseResponse(t, recorder, parseText, testConfig.DefaultNestLimit, false)
			},
		},
		{
			name: "CustomNestLimit",
			body: gin.H{"text": "**a**", "nest_limit": 0},
			buildStubs: func(store *mockcache.MockStore) {
				key := cache.Key(cache.ModeFull, 0, "**a**")
				store.EXPECT().
					GetParsed(gomock.Any(), gomock.Eq(key)).
					Times(1).
					Return(nil, cache.ErrCacheMiss)
				store.EXPECT().
					SaveParsed(gomock.Any(), gomock.Eq(key), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				requireParseResponse(t, recorder, "**a**", 0, false)
			},
		},
		{
			name: "EmptyEntities",
			body: gin.H{"text": "just text"},
			buildStubs: func(store *mockcache.MockStore) {
				store.EXPECT().GetParsed(gomock.Any(), gomock.Any()).Times(1).Return(nil, cache.ErrCacheMiss)
				store.EXPECT().SaveParsed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return(nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Contains(t, recorder.Body.String(), `"mentions":[]`)
				require.Contains(t, recorder.Body.String(), `"urls":[]`)
			},
		},
		{
			name: "EmptyText",
			body: gin.H{"text": ""},
			buildStubs: func(store *mockcache.MockStore) {
				key := cache.Key(cache.ModeFull, testConfig.DefaultNestLimit, "")
				store.EXPECT().
					GetParsed(gomock.Any(), gomock.Eq(key)).
					Times(1).
					Return(nil, cache.ErrCacheMiss)
				store.EXPECT().
					SaveParsed(gomock.Any(), gomock.Eq(key), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				res := requireParseResponse(t, recorder, "", testConfig.DefaultNestLimit, false)
				require.JSONEq(t, `[]`, string(res.Nodes))
				require.Empty(t, res.Canonical)
			},
		},
		{
			name: "NullText",
			body: gin.H{"text": nil},
			buildStubs: func(store *mockcache.MockStore) {
				store.EXPECT().GetParsed(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				requireFieldError(t, recorder, ErrInvalidParams, "text", getBindingErrorMessage("required"))
			},
		},
		{
			name: "EmptyBody",
			body: gin.H{},
			buildStubs: func(store *mockcache.MockStore) {
				store.EXPECT().GetParsed(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				requireFieldError(t, recorder, ErrInvalidParams, "text", getBindingErrorMessage("required"))
			},
		},
		{
			name: "TextTooLong",
			body: gin.H{"text": strings.Repeat("a", testConfig.MaxInputLength+1)},
			buildStubs: func(store *mockcache.MockStore) {
				store.EXPECT().GetParsed(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				requireFieldError(t, recorder, ErrInvalidParams, "text", getBindingErrorMessage("max"))
			},
		},
		{
			name: "TextLengthInRunes",
			body: gin.H{"text": strings.Repeat("語", testConfig.MaxInputLength)},
			buildStubs: func(store *mockcache.MockStore) {
				store.EXPECT().GetParsed(gomock.Any(), gomock.Any()).Times(1).Return(nil, cache.ErrCacheMiss)
				store.EXPECT().SaveParsed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return(nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
			},
		},
		{
			name: "NestLimitTooHigh",
			body: gin.H{"text": parseText, "nest_limit": testConfig.MaxNestLimit + 1},
			buildStubs: func(store *mockcache.MockStore) {
				store.EXPECT().GetParsed(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				requireFieldError(t, recorder, ErrInvalidParams, "nest_limit", getBindingErrorMessage("lte"))
			},
		},
		{
			name: "NegativeNestLimit",
			body: gin.H{"text": parseText, "nest_limit": -1},
			buildStubs: func(store *mockcache.MockStore) {
				store.EXPECT().GetParsed(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				requireFieldError(t, recorder, ErrInvalidParams, "nest_limit", getBindingErrorMessage("gte"))
			},
		},
		{
			name: "NestLimitWrongType",
			body: gin.H{"text": parseText, "nest_limit": "deep"},
			buildStubs: func(store *mockcache.MockStore) {
				store.EXPECT().GetParsed(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				requireFieldError(t, recorder, ErrInvalidParams, "nest_limit", "")
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := mockcache.NewMockStore(ctrl)
			tc.buildStubs(store)

			service := newTestService(t, store)
			recorder := postJSON(t, service, MFMParseURL, tc.body)
			tc.checkResponse(t, recorder)
		})
	}
}

func TestCollectEntities(t *testing.T) {
	tree := mfm.Parse("$[x2 @bob@example.com #a] > no\n> @carol #a :wave:\n<center>https://x.example</center>")

	got := collectEntities(tree)
	require.Equal(t, []string{"@bob@example.com", "@carol"}, got.Mentions)
	require.Equal(t, []string{"a"}, got.Hashtags)
	require.Equal(t, []string{"wave"}, got.EmojiCodes)
	require.Equal(t, []string{"https://x.example"}, got.URLs)
}
