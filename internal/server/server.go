package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/despensa-hq/despensa/internal/llm"
	"github.com/despensa-hq/despensa/internal/logger"
	"github.com/despensa-hq/despensa/internal/prompt"
	"github.com/despensa-hq/despensa/internal/storage"
	"github.com/despensa-hq/despensa/pkg/assistant"
)

// Server exposes the shopping-list generation API over HTTP.
type Server struct {
	app       *fiber.App
	generator llm.TextGenerator
	store     storage.Store
	tpl       prompt.Template
	log       logger.Logger
}

// New wires the fiber app, middleware, and routes.
func New(generator llm.TextGenerator, store storage.Store, tpl prompt.Template, log logger.Logger) *Server {
	if log == nil {
		log = &logger.NopLogger{}
	}

	s := &Server{
		app:       fiber.New(fiber.Config{DisableStartupMessage: true}),
		generator: generator,
		store:     store,
		tpl:       tpl,
		log:       log,
	}

	s.app.Use(recover.New())

	s.app.Get("/", s.handleWelcome)
	s.app.Post(assistant.GeneratePath, s.handleGenerate)

	return s
}

// Listen serves until Shutdown is called or the listener fails.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}
