package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/panaderia/backend/internal/api/handler"
	"github.com/panaderia/backend/internal/api/metrics"
	"github.com/panaderia/backend/internal/api/middleware"
	"github.com/panaderia/backend/internal/core/domain"
	"github.com/panaderia/backend/internal/core/ports"

	_ "github.com/panaderia/backend/docs"
)

// Services are the use cases the router exposes.
type Services struct {
	Auth       ports.AuthService
	Clients    ports.ClientService
	Admins     ports.AdministratorService
	Locations  ports.CatalogService[domain.Location]
	Categories ports.CatalogService[domain.Category]
	Supplies   ports.SupplyService
	Products   ports.CatalogService[domain.Product]
	Orders     ports.CatalogService[domain.Order]
	Branches   ports.BranchService
}

// Options configures NewRouter.
type Options struct {
	Services Services
	Verifier ports.TokenVerifier
	// Probes are the readiness checks behind /health/ready.
	Probes map[string]handler.Probe
	Log    zerolog.Logger
	// Registerer and Gatherer default to the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if err := metrics.Register(opts.Registerer); err != nil {
		opts.Log.Error().Err(err).Msg("register metrics")
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(opts.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "panaderia",
		Registerer: opts.Registerer,
	}))

	admin := middleware.RequireRole(opts.Verifier, domain.RoleAdministrator)
	s := opts.Services

	// --- Auth ---
	e.POST("/auth/login", handler.NewAuthHandler(s.Auth).Login)

	// --- Clients: registration is open, everything else is back office ---
	clients := handler.NewClientHandler(s.Clients)
	e.POST("/clientes", clients.Create)
	e.GET("/clientes", clients.List, admin)
	e.GET("/clientes/:id", clients.Get, admin)
	e.PUT("/clientes/:id", clients.Update, admin)
	e.DELETE("/clientes/:id", clients.Delete, admin)

	admins := handler.NewAdministratorHandler(s.Admins)
	ag := e.Group("/administradores", admin)
	ag.POST("", admins.Create)
	ag.GET("", admins.List)
	ag.GET("/:id", admins.Get)
	ag.PUT("/:id", admins.Update)
	ag.DELETE("/:id", admins.Delete)

	supplies := handler.NewSupplyHandler(s.Supplies)
	sg := e.Group("/insumos", admin)
	sg.POST("/costeo", supplies.Cost)
	crud(sg, supplies)

	// --- Public catalog ---
	crud(e.Group("/ubicaciones"), handler.NewLocationHandler(s.Locations))
	crud(e.Group("/categoriasProducto"), handler.NewCategoryHandler(s.Categories))
	crud(e.Group("/productos"), handler.NewProductHandler(s.Products))
	crud(e.Group("/pedidos"), handler.NewOrderHandler(s.Orders))
	crud(e.Group("/sucursales"), handler.NewBranchHandler(s.Branches))

	// --- Health probes, metrics and docs (no auth required) ---
	health := handler.NewHealthHandler(opts.Probes)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	return e
}

type crudHandler interface {
	Create(c echo.Context) error
	List(c echo.Context) error
	Get(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
}

func crud(g *echo.Group, h crudHandler) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
