// @title                       Backoffice API
// @version                     1.0
// @description                 Back-office multi-cuenta: cuentas, clientes, productos y ventas.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"

	"github.com/jhoicas/backoffice-api/docs"
	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// repos agrupa los adaptadores de persistencia elegidos por STORAGE_DRIVER.
type repos struct {
	accounts repository.AccountRepository
	clients  repository.ClientRepository
	products repository.ProductRepository
	sales    repository.SaleRepository
	tx       repository.SaleTxRunner
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer r.close()

	authUC := auth.NewAuthUseCase(r.accounts, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.BcryptCost)

	app := httpRouter.NewApp(httpRouter.AppConfig{Name: cfg.App.Name, Logger: log}, httpRouter.RouterDeps{
		AuthUC:          authUC,
		AccountUC:       usecase.NewAccountUseCase(r.accounts, cfg.Auth.BcryptCost),
		ClientUC:        usecase.NewClientUseCase(r.clients, r.accounts),
		ProductUC:       usecase.NewProductUseCase(r.tx, r.products, r.accounts),
		SaleUC:          usecase.NewSaleUseCase(r.tx, r.sales, r.clients, r.accounts),
		ReceiptUC:       usecase.NewReceiptUseCase(r.sales, r.clients, r.products, r.accounts, infrapdf.NewMarotoReceiptGenerator()),
		LoginRateLimit:  cfg.Auth.LoginRateLimit,
		LoginRateWindow: cfg.Auth.LoginRateWindow,
	})
	mountDocs(app, log)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config) (*repos, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		s := memory.NewStore()
		return &repos{
			accounts: s.Accounts(),
			clients:  s.Clients(),
			products: s.Products(),
			sales:    s.Sales(),
			tx:       s.TxRunner(),
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.Storage.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &repos{
		accounts: postgres.NewAccountRepository(pool),
		clients:  postgres.NewClientRepository(pool),
		products: postgres.NewProductRepository(pool),
		sales:    postgres.NewSaleRepository(pool),
		tx:       postgres.NewTxRunner(pool),
		close:    pool.Close,
	}, nil
}

// mountDocs expone /docs/doc.json desde el registro de swag y, si existe el archivo, la UI en /docs.
func mountDocs(app *fiber.App, log *logger.Logger) {
	app.Get("/docs/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	if _, err := os.Stat(swaggerFile); err != nil {
		log.Warn().Str("file", swaggerFile).Msg("swagger UI deshabilitada")
		return
	}
	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: swaggerFile,
		Path:     "docs",
		Title:    "Backoffice API",
	}))
}
