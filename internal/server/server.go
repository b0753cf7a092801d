// Pacote server — servidor HTTP do back-office com graceful shutdown.
// Sem TLS — HTTP dentro do cluster, terminação TLS no proxy da frente.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ferreiradev/studio-backoffice/internal/api/handlers"
	"github.com/ferreiradev/studio-backoffice/internal/api/middleware"
	"github.com/ferreiradev/studio-backoffice/internal/config"
)

// Server — servidor HTTP do back-office.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New cria o servidor HTTP com rotas e middlewares configurados.
// jwtAuth pode ser nil (autenticação desativada, só para desenvolvimento).
func New(cfg *config.Config, logger *slog.Logger, handler *handlers.APIHandler, jwtAuth *middleware.JWTAuth) *Server {
	router := chi.NewRouter()

	// Middlewares globais (todas as rotas)
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))

	// JWT com exclusões: submissão pública, health e metrics ficam abertos.
	if jwtAuth != nil {
		router.Use(jwtAuthWithExclusions(jwtAuth,
			"/api/v1/public/", "/health/", "/metrics"))
	}

	registerRoutes(router, handler, jwtAuth != nil)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// registerRoutes liga as rotas da API aos handlers.
func registerRoutes(router chi.Router, h *handlers.APIHandler, authEnabled bool) {
	// Saúde e métricas
	router.Get("/health/live", h.HealthLive)
	router.Get("/health/ready", h.HealthReady)
	router.Get("/metrics", h.GetMetrics)

	// Submissão pública do formulário de contato
	router.Post("/api/v1/public/leads", h.PublicCreateLead)

	// Área administrativa
	router.Route("/api/v1", func(r chi.Router) {
		// Readonly passa em GET; escrita exige admin.
		if authEnabled {
			r.Use(middleware.RequireWriteAccess())
		}

		r.Route("/leads", func(r chi.Router) {
			r.Post("/", h.CreateLead)
			r.Get("/", h.ListLeads)
			r.Get("/{id}", h.GetLead)
			r.Delete("/{id}", h.DeleteLead)
			r.Put("/{id}/status", h.UpdateLeadStatus)
			r.Post("/{id}/archive", h.ArchiveLead)
			r.Post("/{id}/promote", h.PromoteLead)
			r.Put("/{id}/phone", h.SetLeadPhone)
			r.Put("/{id}/project-type", h.SetLeadProjectType)
			r.Put("/{id}/budget-estimate", h.SetLeadBudgetEstimate)
			r.Put("/{id}/notes", h.SetLeadNotes)
			r.Put("/{id}/proposal-link", h.SetLeadProposalLink)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", h.CreateProject)
			r.Get("/", h.ListProjects)
			r.Get("/{id}", h.GetProject)
			r.Put("/{id}", h.UpdateProject)
			r.Delete("/{id}", h.DeleteProject)
			r.Get("/{id}/board", h.GetBoard)
			r.Post("/{id}/tasks", h.CreateTask)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/{id}/move", h.MoveTask)
			r.Put("/{id}/status", h.SetTaskStatus)
			r.Delete("/{id}", h.DeleteTask)
		})

		r.Route("/finances", func(r chi.Router) {
			r.Post("/", h.CreateFinance)
			r.Get("/", h.ListFinances)
			r.Get("/summary", h.GetFinanceSummary)
			r.Delete("/{id}", h.DeleteFinance)
		})

		r.Route("/certificates", func(r chi.Router) {
			r.Post("/", h.CreateCertificate)
			r.Get("/", h.ListCertificates)
			r.Get("/{id}", h.GetCertificate)
			r.Put("/{id}", h.UpdateCertificate)
			r.Delete("/{id}", h.DeleteCertificate)
		})
	})
}

// jwtAuthWithExclusions envolve JWTAuth.Middleware() liberando os caminhos
// que começam com qualquer um dos prefixos indicados.
func jwtAuthWithExclusions(jwtAuth *middleware.JWTAuth, excludePrefixes ...string) func(http.Handler) http.Handler {
	jwtMiddleware := jwtAuth.Middleware()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range excludePrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			jwtMiddleware(next).ServeHTTP(w, r)
		})
	}
}

// Run inicia o servidor e espera o sinal de término (SIGINT, SIGTERM).
// Ao receber o sinal, executa o graceful shutdown.
func (s *Server) Run() error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("Servidor HTTP iniciado",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Sinal de término recebido", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("erro do servidor HTTP: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Executando graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("erro no graceful shutdown: %w", err)
	}

	s.logger.Info("Servidor HTTP parado")
	return nil
}
