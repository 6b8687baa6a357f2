// Package app assembles the fiber application: middleware, controllers and
// routes over a repository.Store.
package app

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rakesh3649/Fitness/configs"
	accountController "github.com/rakesh3649/Fitness/controllers/accounts"
	"github.com/rakesh3649/Fitness/controllers/callbacks"
	"github.com/rakesh3649/Fitness/controllers/contacts"
	"github.com/rakesh3649/Fitness/controllers/health"
	orderController "github.com/rakesh3649/Fitness/controllers/orders"
	productController "github.com/rakesh3649/Fitness/controllers/products"
	userController "github.com/rakesh3649/Fitness/controllers/user"
	"github.com/rakesh3649/Fitness/middlewares"
	"github.com/rakesh3649/Fitness/models"
	"github.com/rakesh3649/Fitness/policy"
	"github.com/rakesh3649/Fitness/repository"
	"github.com/rakesh3649/Fitness/routes"
)

// Notifier receives the public form submissions once they are stored.
type Notifier interface {
	ContactSubmitted(models.Contact)
	CallbackRequested(models.Callback)
}

type Options struct {
	Config   configs.Config
	Store    *repository.Store
	Policy   *policy.Policy
	Notifier Notifier
	Logger   *slog.Logger
}

// New builds the application. A nil Policy means policy.Default and a nil
// Logger means slog.Default.
func New(opts Options) *fiber.App {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	p := opts.Policy
	if p == nil {
		p = policy.Default()
	}

	app := fiber.New(fiber.Config{
		AppName:               "FitnessGym API",
		ErrorHandler:          middlewares.ErrorHandler(cfg.IsDevelopment(), logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.IsDevelopment()}))
	app.Use(requestid.New())
	app.Use(cors.New(corsConfig(cfg)))
	app.Use(middlewares.RequestLogger(logger))

	store := opts.Store
	secret := []byte(cfg.JWTSecret)
	protect := middlewares.Protect(secret, store.Accounts)

	api := app.Group("/api")
	routes.HealthRoute(api, health.New(store.Pinger, cfg.Env))
	routes.UserRoute(api, userController.New(store.Accounts, secret, cfg.JWTExpire), protect)
	routes.AccountRoute(api, accountController.New(store.Accounts), protect)
	routes.ContactRoutes(api, contacts.New(store.Contacts, opts.Notifier), protect, p)
	routes.CallbackRoutes(api, callbacks.New(store.Callbacks, opts.Notifier), protect, p)
	routes.OrderRoutes(api, orderController.New(store.Orders, store.Accounts, p), protect, p)
	routes.ProductsRoute(api, productController.New(store.Products), protect, p)

	app.Use(middlewares.NotFound)
	return app
}

// Credentialed CORS cannot use a wildcard origin.
const defaultOrigin = "http://localhost:3000"

// corsConfig allows the configured site origin. In development any
// localhost port is allowed as well.
func corsConfig(cfg configs.Config) cors.Config {
	origin := cfg.CORSOrigin
	if origin == "" || origin == "*" {
		origin = defaultOrigin
	}
	c := cors.Config{
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
	}
	if cfg.IsDevelopment() {
		c.AllowOriginsFunc = allowDevOrigin(origin)
	} else {
		c.AllowOrigins = origin
	}
	return c
}

// allowDevOrigin accepts the configured origins and any local one.
func allowDevOrigin(configured string) func(string) bool {
	allowed := make(map[string]bool)
	for _, o := range strings.Split(configured, ",") {
		allowed[normalizeOrigin(o)] = true
	}
	return func(origin string) bool {
		return allowed[normalizeOrigin(origin)] || isLocalOrigin(origin)
	}
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(origin)), "/")
}

func isLocalOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "localhost" || host == "127.0.0.1"
}
