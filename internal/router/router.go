package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/futuresmile/clinic-api/internal/handler/health"
	"github.com/futuresmile/clinic-api/internal/handler/prometheus"
	"github.com/futuresmile/clinic-api/internal/middleware"
	"github.com/futuresmile/clinic-api/pkg/logger"
)

// Handler registers a set of routes under the API group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	Mode           string        `yaml:"mode" envconfig:"GIN_MODE"`
	RateLimit      float64       `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	RateBurst      int           `yaml:"rate_burst" envconfig:"RATE_BURST"`
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
	AllowedOrigins []string      `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
}

type Router struct {
	engine *gin.Engine
	prom   *prometheus.Handler
}

func New(cfg Config, log *logger.Logger, healthH *health.Handler, prom *prometheus.Handler, handlers ...Handler) *Router {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = middleware.DefaultTimeoutConfig().Duration
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log),
		prom.Middleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: timeout}),
	)

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, middleware.HeaderXRequestID)
	engine.Use(cors.New(corsConfig))

	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = int(cfg.RateLimit)
		}
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  rate.Limit(cfg.RateLimit),
			Burst: burst,
		})
		engine.Use(limiter.RateLimit())
	}

	healthH.RegisterRoutes(engine)
	engine.GET("/metrics", prom.Handler())

	api := engine.Group("/api/v1")
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	return &Router{engine: engine, prom: prom}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
