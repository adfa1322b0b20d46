// Package server is the HTTP transport: it authenticates the caller, decodes requests and maps
// engine results onto the JSON envelope. No business rule lives here.
package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Abhi1565/JobHunt-backend/internal/config"
	"github.com/Abhi1565/JobHunt-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

// Services are the engines the routes delegate to.
type Services struct {
	Lifecycle    *services.JobLifecycle
	Applications *services.JobApplications
	Transitions  *services.ApplicationTransitions
	Companies    *services.CompanyRegistry
	Profiles     *services.Profiles
	// Health reports store reachability; nil means always healthy.
	Health func(ctx context.Context) error
}

type Server struct {
	app      *fiber.App
	services Services
	port     int
}

func New(serverConfig config.ServerConfig, authConfig config.AuthConfig, svc Services) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "jobhunt-backend",
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(requestLogger())
	app.Use(recover.New())
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	if len(serverConfig.CorsOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(serverConfig.CorsOrigins, ","),
			AllowCredentials: true,
		}))
	}
	if serverConfig.RateLimitMax > 0 {
		app.Use(rateLimiter(serverConfig.RateLimitMax, serverConfig.RateLimitWindow))
	}

	s := &Server{app: app, services: svc, port: serverConfig.Port}
	s.registerRoutes(authenticate(authConfig.SecretKey))
	return s
}

func (s *Server) registerRoutes(auth fiber.Handler) {
	s.app.Get("/health", s.health)

	api := s.app.Group("/api/v1")

	jobs := api.Group("/job")
	jobs.Get("/get", s.listJobs)
	jobs.Get("/get/:id", s.getJob)
	jobs.Post("/post", auth, s.createJob)
	jobs.Get("/getadminjobs", auth, s.listEmployerJobs)
	jobs.Put("/update/:id", auth, s.updateJob)

	applications := api.Group("/application", auth)
	applications.Get("/apply/:id", s.apply)
	applications.Get("/get", s.listApplied)
	applications.Get("/:id/applicants", s.listApplicants)
	applications.Post("/status/:id/update", s.updateStatus)

	companies := api.Group("/company")
	companies.Post("/register", auth, s.registerCompany)
	companies.Get("/get", auth, s.listCompanies)
	companies.Get("/get/:id", s.getCompany)
	companies.Put("/update/:id", auth, s.updateCompany)

	users := api.Group("/user", auth)
	users.Get("/me", s.me)
	users.Post("/profile/update", s.updateProfile)
}

// App exposes the fiber app for in-process requests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks until the server stops.
func (s *Server) Listen() error {
	log.Infof("http server listening on port %d", s.port)
	return s.app.Listen(fmt.Sprintf(":%d", s.port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) health(c *fiber.Ctx) error {
	if s.services.Health != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := s.services.Health(ctx); err != nil {
			log.Warnf("health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(envelope{Success: false, Message: "store unavailable"})
		}
	}
	return respond(c, fiber.StatusOK, "ok", nil)
}
