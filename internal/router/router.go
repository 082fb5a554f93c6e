package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/AaSu9/Aamcare/internal/handler"
	accountHandler "github.com/AaSu9/Aamcare/internal/handler/account"
	checkupHandler "github.com/AaSu9/Aamcare/internal/handler/checkup"
	contentHandler "github.com/AaSu9/Aamcare/internal/handler/content"
	notificationHandler "github.com/AaSu9/Aamcare/internal/handler/notification"
	profileHandler "github.com/AaSu9/Aamcare/internal/handler/profile"
	vaccinationHandler "github.com/AaSu9/Aamcare/internal/handler/vaccination"
	"github.com/AaSu9/Aamcare/internal/middleware"
	"github.com/AaSu9/Aamcare/pkg/logger"
)

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	accountH      *accountHandler.Handler
	profileH      *profileHandler.Handler
	vaccinationH  *vaccinationHandler.Handler
	checkupH      *checkupHandler.Handler
	contentH      *contentHandler.Handler
	notificationH *notificationHandler.Handler
	h             *handler.Handler
	contentMaxAge int
	metrics       *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type Config struct {
	RateLimit        rate.Limit
	RateBurst        int
	TimeoutSeconds   int
	CORSConfig       middleware.CORSConfig
	MetricsPrefix    string
	ContentCacheSecs int
}

func NewRouter(
	log *logger.Logger,
	auth *middleware.AuthMiddleware,
	accountH *accountHandler.Handler,
	profileH *profileHandler.Handler,
	vaccinationH *vaccinationHandler.Handler,
	checkupH *checkupHandler.Handler,
	contentH *contentHandler.Handler,
	notificationH *notificationHandler.Handler,
	h *handler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	registerValidators()

	r := &Router{
		engine:        engine,
		auth:          auth,
		accountH:      accountH,
		profileH:      profileH,
		vaccinationH:  vaccinationH,
		checkupH:      checkupH,
		contentH:      contentH,
		notificationH: notificationH,
		h:             h,
		contentMaxAge: config.ContentCacheSecs,
		metrics:       initRouterMetrics(config.MetricsPrefix),
	}

	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = middleware.DefaultTimeoutConfig().Duration
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.ErrorHandler(log),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: timeout}),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

// registerValidators adds the custom binding tags request models rely on.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return !t.After(time.Now())
	})
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)

	// Public routes
	r.accountH.RegisterRoutes(api)

	// Protected routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())

	r.accountH.RegisterProtectedRoutes(protected)
	r.profileH.RegisterRoutes(protected)
	r.vaccinationH.RegisterRoutes(protected)
	r.checkupH.RegisterRoutes(protected)
	r.notificationH.RegisterRoutes(protected)

	content := protected.Group("")
	content.Use(middleware.CacheControl(r.contentMaxAge))
	r.contentH.RegisterRoutes(content)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
		health.GET("/metrics", r.h.MetricsHandler)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
