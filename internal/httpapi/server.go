// Package httpapi binds the assessment protocol to an HTTP transport: a
// submission and privileged-operations API behind JWT auth, plus the webhook
// endpoints the oracle transport posts signed callbacks to.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cipherwatch/cipherwatch-go/internal/sealing"
	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch/assessment"
)

// Server wires the protocol, the edge sealing codec, and auth into a gin
// router. The codec plays the client-side sealing provider: plaintext from
// the caller is sealed at the edge, before it reaches the protocol core.
type Server struct {
	router    *gin.Engine
	protocol  *assessment.Protocol
	codec     *sealing.Codec
	jwtSecret []byte
	log       *zap.Logger
}

// NewServer builds the HTTP surface. The logger must not be nil.
func NewServer(protocol *assessment.Protocol, codec *sealing.Codec, jwtSecret []byte, log *zap.Logger) *Server {
	s := &Server{
		router:    gin.New(),
		protocol:  protocol,
		codec:     codec,
		jwtSecret: jwtSecret,
		log:       log,
	}
	s.router.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Oracle callbacks are authenticated by their proof, not by a bearer
	// token; the transport that delivers them is untrusted anyway.
	callbacks := s.router.Group("/oracle/callback")
	callbacks.POST("/risk", s.handleRiskCallback)
	callbacks.POST("/reveal", s.handleRevealCallback)

	api := s.router.Group("/api")
	api.Use(AuthMiddleware(s.jwtSecret, s.log))
	{
		api.POST("/threshold", s.handleSetThreshold)
		api.POST("/records", s.handleSubmit)
		api.GET("/records/:id", s.handleStatus)
		api.POST("/records/:id/reveal", s.handleRequestReveal)
		api.GET("/records/:id/alert", s.handleReadAlert)
	}
}

// Handler exposes the router for tests and for custom http.Server wiring.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.Info("http api listening", zap.String("addr", addr))
	return s.router.Run(addr)
}
