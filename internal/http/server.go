// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"motofrete/internal/http/handlers"
	"motofrete/internal/http/middleware"
	"motofrete/internal/metrics"
)

type ServerDeps struct {
	Delivery      handlers.DeliveryService
	Phone         string
	Metrics       *metrics.ServerMetrics
	Gatherer      prometheus.Gatherer
	Logger        *zap.Logger
	SessionMaxAge time.Duration
	SecureCookies bool
}

type Server struct {
	delivery *handlers.DeliveryHandler
	metrics  *metrics.ServerMetrics
	gatherer prometheus.Gatherer
	log      *zap.Logger
	session  middleware.SessionOptions
}

func NewServer(deps ServerDeps) *Server {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		delivery: handlers.NewDeliveryHandler(deps.Delivery, deps.Phone),
		metrics:  deps.Metrics,
		gatherer: deps.Gatherer,
		log:      log,
		session:  middleware.SessionOptions{MaxAge: deps.SessionMaxAge, Secure: deps.SecureCookies},
	}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(s.log), middleware.Logging(s.log))
	if s.metrics != nil {
		r.Use(middleware.Metrics(s.metrics))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if s.gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(s.gatherer)))
	}

	api := r.Group("/api/v1/delivery", middleware.Session(s.session))
	api.POST("/quote", s.delivery.Submit)
	api.GET("/quote", s.delivery.Get)
	api.DELETE("/quote", s.delivery.Reset)
	api.GET("/quote/map", s.delivery.Map)
	return r
}
