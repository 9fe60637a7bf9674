package api

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	db "github.com/dontcallmebro/BQL-APP/db/sqlc"
)

// Server serves HTTP requests for the smile calibration service.
type Server struct {
	store  db.Store
	router *gin.Engine
	log    zerolog.Logger
	beta   float64

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewServer creates a new HTTP server and set up routing.
// beta is used by /v1/calibrate when a request does not carry its own.
func NewServer(store db.Store, beta float64, log zerolog.Logger) *Server {
	server := &Server{
		store:    store,
		beta:     beta,
		log:      log.With().Str("component", "api").Logger(),
		limiters: make(map[string]*rate.Limiter),
	}

	server.setupRouter()
	return server
}

func (server *Server) setupRouter() {
	router := gin.New()
	router.Use(gin.Recovery(), server.requestLogger)

	router.POST("/register", server.register)

	authRoutes := router.Group("/v1").Use(server.authentication, server.rateLimit)
	authRoutes.POST("/calibrate", server.calibrate)
	authRoutes.POST("/smile", server.smile)
	authRoutes.GET("/calibrations", server.listCalibrations)
	server.router = router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	server.log.Info().Str("address", address).Msg("server listening")
	return server.router.Run(address)
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}
