package router

import (
	"time"

	"huevopos/internal/config"
	"huevopos/internal/handler"
	"huevopos/internal/middleware"
	"huevopos/internal/service"
	"huevopos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps groups everything the HTTP layer needs. Services are built at the
// composition root (cmd/server) so the worker pool can share them.
type Deps struct {
	DB          *gorm.DB // nil when the redis storage driver is active
	RDB         *redis.Client
	Ventas      service.VentaService
	Precios     service.PrecioService
	Ubicaciones service.UbicacionService
	Auth        service.AuthService
	Dispatcher  *worker.Dispatcher
}

// New wires handlers and middleware and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← KV store
func New(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(deps.Auth)
	ventasH := handler.NewVentasHandler(deps.Ventas, deps.Dispatcher)
	ubicacionesH := handler.NewUbicacionesHandler(deps.Ubicaciones)
	precioH := handler.NewPrecioHandler(deps.Precios)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(deps.DB, deps.RDB))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/catalogo", handler.Catalogo)

		v1.GET("/precio", precioH.Obtener)
		v1.PUT("/precio", precioH.Guardar)

		v1.GET("/ubicaciones", ubicacionesH.Listar)
		v1.POST("/ubicaciones", ubicacionesH.Agregar)
		v1.PUT("/ubicaciones/actual", ubicacionesH.Seleccionar)

		v1.POST("/ventas", ventasH.Crear)
		v1.GET("/ventas", ventasH.Listar)
		v1.GET("/ventas/actual", ventasH.Actual)
		v1.PUT("/ventas/actual", ventasH.Seleccionar)
		v1.GET("/ventas/:id", ventasH.Obtener)
		v1.POST("/ventas/:id/transacciones", ventasH.RegistrarTransaccion)
		v1.POST("/ventas/:id/gastos", ventasH.RegistrarGasto)
		v1.GET("/ventas/:id/balance", ventasH.Balance)
		v1.GET("/ventas/:id/reporte", ventasH.Reporte)
		v1.POST("/ventas/:id/reporte/exportar", ventasH.ExportarReporte)
	}

	return r
}
