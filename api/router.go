package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Establishes HTTP router.
func (service *Service) setupRouter(server *http.Server) {
	router := gin.New()

	// request id goes first, so the logger and the handlers can see it
	router.Use(
		requestIDMiddleware(),
		loggerMiddleware(),
		gin.Recovery(),
		service.corsMiddleware(),
		bodyLimitMiddleware(MaxRequestBodySize),
	)

	router.GET(PingURL, func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "pong")
	})

	router.POST(MFMParseURL, service.parse)
	router.POST(MFMParseSimpleURL, service.parseSimple)
	router.POST(MFMStringifyURL, service.stringify)

	server.Handler = router
	service.router = router
}
