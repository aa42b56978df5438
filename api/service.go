package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Drolfothesgnir/mfm/cache"
	"github.com/Drolfothesgnir/mfm/util"
	"github.com/gin-gonic/gin"
)

const (
	// api routes
	RequestIDHeader    = "X-Request-ID"
	PingURL            = "/ping"
	MFMParseURL        = "/mfm/parse"
	MFMParseSimpleURL  = "/mfm/parse/simple"
	MFMStringifyURL    = "/mfm/stringify"
	MaxRequestBodySize = 4 << 20
)

var (
	// api errors
	ErrInvalidParams = errors.New("invalid params")
	ErrInvalidTree   = errors.New("invalid tree")
)

type Service struct {
	config util.Config
	cache  cache.Store
	router *gin.Engine
	server *http.Server
}

// Returns new service instance with provided config and cache store.
func NewService(config util.Config, store cache.Store) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	addr, err := config.ListenAddress()
	if err != nil {
		return nil, err
	}

	service := &Service{
		config: config,
		cache:  store,
	}

	server := &http.Server{
		Addr: addr,
	}

	// caps how long a client can take to send just the headers (blocks slowloris).
	server.ReadHeaderTimeout = 5 * time.Second
	// caps time to read the full request (incl. body).
	server.ReadTimeout = 10 * time.Second
	// caps time spent writing the response
	server.WriteTimeout = 15 * time.Second
	// how long to keep idle keep-alive connections open.
	server.IdleTimeout = 60 * time.Second

	service.setupRouter(server)

	service.server = server

	return service, nil
}

// Start runs the HTTP server
func (service *Service) Start() error {
	return service.server.ListenAndServe()
}

func (service *Service) Shutdown(ctx context.Context) error {
	return service.server.Shutdown(ctx)
}
