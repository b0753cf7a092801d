// Ponto de entrada do Studio Backoffice — API administrativa do estúdio.
// Carrega a configuração, conecta no PostgreSQL, aplica as migrações,
// monta o limitador de submissões (Redis ou memória), o saneador de entrada,
// a camada de serviços e os handlers, e sobe o servidor HTTP com
// middleware JWT e graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/ferreiradev/studio-backoffice/internal/api/handlers"
	"github.com/ferreiradev/studio-backoffice/internal/api/middleware"
	"github.com/ferreiradev/studio-backoffice/internal/config"
	"github.com/ferreiradev/studio-backoffice/internal/database"
	"github.com/ferreiradev/studio-backoffice/internal/ratelimit"
	"github.com/ferreiradev/studio-backoffice/internal/repository"
	"github.com/ferreiradev/studio-backoffice/internal/sanitize"
	"github.com/ferreiradev/studio-backoffice/internal/server"
	"github.com/ferreiradev/studio-backoffice/internal/service"
)

func main() {
	// 1. Configuração a partir das variáveis de ambiente
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Erro ao carregar a configuração", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Logging
	logger := config.SetupLogger(cfg)
	logger.Info("Studio Backoffice iniciando",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	// 3. Migrações do banco
	logger.Info("Aplicando migrações do banco...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Erro nas migrações do banco", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Pool de conexões PostgreSQL
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Erro ao conectar no PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 5. Limitador de submissões públicas: Redis quando configurado,
	// senão janela fixa em memória (instância única).
	var limiter ratelimit.Limiter
	var redisChecker handlers.ReadinessChecker
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		redisLimiter := ratelimit.NewRedisLimiter(redisClient, cfg.RateLimit, cfg.RateWindow)
		limiter = redisLimiter
		redisChecker = redisLimiter
		logger.Info("Limitador de submissões via Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("limit", cfg.RateLimit),
			slog.String("window", cfg.RateWindow.String()),
		)
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit, cfg.RateWindow)
		logger.Info("Limitador de submissões em memória (SB_REDIS_ADDR vazio)",
			slog.Int("limit", cfg.RateLimit),
			slog.String("window", cfg.RateWindow.String()),
		)
	}

	// 6. Repositories
	leadRepo := repository.NewLeadRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	financeRepo := repository.NewFinanceRepository(pool)
	certificateRepo := repository.NewCertificateRepository(pool)

	// 7. Services
	sanitizer := sanitize.New()
	leadsSvc := service.NewLeadService(leadRepo, sanitizer, limiter, logger)
	promotionSvc := service.NewPromotionService(leadRepo, logger)
	projectsSvc := service.NewProjectService(projectRepo, logger)
	tasksSvc := service.NewTaskService(taskRepo, projectRepo, logger)
	financesSvc := service.NewFinanceService(financeRepo, logger)
	certificatesSvc := service.NewCertificateService(certificateRepo, logger)

	// 8. JWT middleware (opcional: SB_JWT_JWKS_URL vazio desativa)
	var jwtAuth *middleware.JWTAuth
	var idpChecker handlers.ReadinessChecker
	if cfg.AuthEnabled() {
		jwtAuth, err = middleware.NewJWTAuth(
			cfg.JWTJWKSURL,
			cfg.JWTCACertPath,
			cfg.JWTIssuer,
			cfg.RoleAdminGroups,
			cfg.RoleReadonlyGroups,
			cfg.JWKSClientTimeout,
			cfg.JWKSRefreshInterval,
			cfg.JWTLeeway,
			logger,
		)
		if err != nil {
			logger.Error("Erro ao criar o middleware JWT", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer jwtAuth.Close()

		idpChecker, err = middleware.NewIdPReadinessChecker(
			cfg.JWTJWKSURL, cfg.JWTCACertPath, cfg.IdPReadinessTimeout)
		if err != nil {
			logger.Error("Erro ao criar o readiness checker do IdP", slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("Middleware JWT inicializado",
			slog.String("jwks_url", cfg.JWTJWKSURL),
			slog.String("issuer", cfg.JWTIssuer),
		)
	} else {
		logger.Warn("Autenticação desativada (SB_JWT_JWKS_URL vazio) — apenas para desenvolvimento local")
	}

	// 9. Readiness checkers + handlers
	pgChecker := database.NewReadinessChecker(pool)
	healthHandler := handlers.NewHealthHandler(pgChecker, redisChecker, idpChecker)

	apiHandler := handlers.NewAPIHandler(
		healthHandler,
		leadsSvc,
		promotionSvc,
		projectsSvc,
		tasksSvc,
		financesSvc,
		certificatesSvc,
		logger,
	)

	// 10. Servidor HTTP
	srv := server.New(cfg, logger, apiHandler, jwtAuth)
	if err := srv.Run(); err != nil {
		logger.Error("Erro do servidor", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Studio Backoffice parado")
}
