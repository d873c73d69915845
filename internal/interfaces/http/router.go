package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	AccountUC *usecase.AccountUseCase
	ClientUC  *usecase.ClientUseCase
	ProductUC *usecase.ProductUseCase
	SaleUC    *usecase.SaleUseCase
	ReceiptUC *usecase.ReceiptUseCase
	// LoginRateLimit intentos de login por IP y ventana; 0 desactiva el límite.
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// AppConfig parámetros de la aplicación Fiber.
type AppConfig struct {
	Name   string
	Logger *logger.Logger
}

// NewApp construye la aplicación Fiber con los middlewares comunes, /health y las rutas de la API.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	gate := AuthMiddleware(deps.AuthUC)

	// Cuentas y login (registro y login públicos)
	authHandler := NewAuthHandler(deps.AuthUC)
	accountHandler := NewAccountHandler(deps.AccountUC)
	app.Post("/users", authHandler.Register)
	app.Post("/login", loginLimiter(deps.LoginRateLimit, deps.LoginRateWindow), authHandler.Login)
	app.Get("/users", gate, accountHandler.List)
	app.Patch("/users/:id", gate, accountHandler.Update)
	app.Delete("/users/:id", AuthMiddlewareAnyStatus(deps.AuthUC), accountHandler.Delete)

	// Clients (listado público; el resto protegido)
	clientHandler := NewClientHandler(deps.ClientUC)
	app.Get("/clients", clientHandler.List)
	app.Post("/clients", gate, clientHandler.Create)
	app.Get("/clients/:id", gate, clientHandler.GetByID)
	app.Patch("/clients/:id", gate, clientHandler.Update)
	app.Delete("/clients/:id", gate, clientHandler.Delete)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	app.Get("/products", productHandler.List)
	app.Post("/products", gate, productHandler.Create)
	app.Get("/products/:id", gate, productHandler.GetByID)
	app.Patch("/products/:id", gate, productHandler.Update)
	app.Delete("/products/:id", gate, productHandler.Delete)

	// Sales
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptUC)
	app.Get("/sales", saleHandler.List)
	app.Post("/sales", gate, saleHandler.Create)
	app.Get("/sales/:id", gate, saleHandler.GetByID)
	app.Patch("/sales/:id", gate, saleHandler.Update)
	app.Delete("/sales/:id", gate, saleHandler.Delete)
	app.Get("/sales/:id/receipt", gate, saleHandler.Receipt)
}

func loginLimiter(max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiados intentos de login, intente más tarde"})
		},
	})
}
