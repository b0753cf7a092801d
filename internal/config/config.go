// Pacote config — carga e validação da configuração do back-office
// a partir de variáveis de ambiente.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Versão da aplicação, definida no build via -ldflags.
var Version = "dev"

// Config contém todos os parâmetros de configuração do back-office.
type Config struct {
	// --- Servidor ---

	// Porta do servidor HTTP
	Port int
	// Nível de log (debug, info, warn, error)
	LogLevel slog.Level
	// Formato dos logs (json, text)
	LogFormat string

	// --- PostgreSQL ---

	// Host do PostgreSQL
	DBHost string
	// Porta do PostgreSQL
	DBPort int
	// Nome do banco
	DBName string
	// Usuário do PostgreSQL
	DBUser string
	// Senha do PostgreSQL
	DBPassword string
	// Modo SSL: disable, require, verify-ca, verify-full
	DBSSLMode string

	// --- Redis (limite de frequência) ---

	// Endereço do Redis (host:porta). Vazio → limitador em memória.
	RedisAddr string
	// Senha do Redis (opcional)
	RedisPassword string
	// Número do banco Redis
	RedisDB int

	// --- Limite de frequência da submissão pública ---

	// Submissões permitidas por IP dentro da janela
	RateLimit int
	// Janela do limite de frequência
	RateWindow time.Duration

	// --- JWT (autenticação da área administrativa) ---

	// URL do endpoint JWKS do IdP. Vazio → autenticação desativada
	// (apenas para desenvolvimento local).
	JWTJWKSURL string
	// Issuer esperado do JWT
	JWTIssuer string
	// Caminho do certificado CA para TLS com o IdP (opcional)
	JWTCACertPath string
	// Timeout do cliente HTTP do JWKS
	JWKSClientTimeout time.Duration
	// Intervalo de atualização das chaves JWKS
	JWKSRefreshInterval time.Duration
	// Tolerância de relógio na validação do JWT
	JWTLeeway time.Duration
	// Timeout da verificação de prontidão do IdP
	IdPReadinessTimeout time.Duration

	// --- Mapeamento grupos → papéis ---

	// Grupos do IdP que dão o papel admin (separados por vírgula)
	RoleAdminGroups []string
	// Grupos do IdP que dão o papel readonly (separados por vírgula)
	RoleReadonlyGroups []string

	// --- Graceful shutdown ---

	// Timeout do graceful shutdown do servidor HTTP
	ShutdownTimeout time.Duration
}

// AuthEnabled indica se a autenticação JWT está ativa.
func (c *Config) AuthEnabled() bool {
	return c.JWTJWKSURL != ""
}

// Load carrega a configuração das variáveis de ambiente, valida os
// campos obrigatórios e devolve Config ou erro.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Servidor ---

	// SB_PORT — porta do servidor HTTP (padrão 8080)
	cfg.Port, err = getEnvInt("SB_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("SB_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("SB_PORT: valor %d fora do intervalo 1-65535", cfg.Port)
	}

	// SB_LOG_LEVEL — nível de log (padrão info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("SB_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("SB_LOG_LEVEL: %w", err)
	}

	// SB_LOG_FORMAT — formato dos logs (padrão json)
	cfg.LogFormat = getEnvDefault("SB_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("SB_LOG_FORMAT: valor inválido %q, aceitos: json, text", cfg.LogFormat)
	}

	// --- PostgreSQL ---

	// SB_DB_HOST — obrigatório
	cfg.DBHost, err = getEnvRequired("SB_DB_HOST")
	if err != nil {
		return nil, err
	}

	// SB_DB_PORT — porta do PostgreSQL (padrão 5432)
	cfg.DBPort, err = getEnvInt("SB_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("SB_DB_PORT: %w", err)
	}

	// SB_DB_NAME — obrigatório
	cfg.DBName, err = getEnvRequired("SB_DB_NAME")
	if err != nil {
		return nil, err
	}

	// SB_DB_USER — obrigatório
	cfg.DBUser, err = getEnvRequired("SB_DB_USER")
	if err != nil {
		return nil, err
	}

	// SB_DB_PASSWORD — obrigatório
	cfg.DBPassword, err = getEnvRequired("SB_DB_PASSWORD")
	if err != nil {
		return nil, err
	}

	// SB_DB_SSL_MODE — modo SSL (padrão disable)
	cfg.DBSSLMode = getEnvDefault("SB_DB_SSL_MODE", "disable")
	validSSLModes := map[string]bool{
		"disable": true, "require": true, "verify-ca": true, "verify-full": true,
	}
	if !validSSLModes[cfg.DBSSLMode] {
		return nil, fmt.Errorf("SB_DB_SSL_MODE: valor inválido %q, aceitos: disable, require, verify-ca, verify-full", cfg.DBSSLMode)
	}

	// --- Redis ---

	// SB_REDIS_ADDR — opcional; vazio usa o limitador em memória
	cfg.RedisAddr = getEnvDefault("SB_REDIS_ADDR", "")

	// SB_REDIS_PASSWORD — senha do Redis (opcional)
	cfg.RedisPassword = getEnvDefault("SB_REDIS_PASSWORD", "")

	// SB_REDIS_DB — número do banco Redis (padrão 0)
	cfg.RedisDB, err = getEnvInt("SB_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("SB_REDIS_DB: %w", err)
	}

	// --- Limite de frequência ---

	// SB_RATE_LIMIT — submissões por IP dentro da janela (padrão 1)
	cfg.RateLimit, err = getEnvInt("SB_RATE_LIMIT", 1)
	if err != nil {
		return nil, fmt.Errorf("SB_RATE_LIMIT: %w", err)
	}
	if cfg.RateLimit < 1 {
		return nil, fmt.Errorf("SB_RATE_LIMIT: valor %d deve ser positivo", cfg.RateLimit)
	}

	// SB_RATE_WINDOW — janela do limite (padrão 1h)
	cfg.RateWindow, err = getEnvDuration("SB_RATE_WINDOW", time.Hour)
	if err != nil {
		return nil, fmt.Errorf("SB_RATE_WINDOW: %w", err)
	}

	// --- JWT ---

	// SB_JWT_JWKS_URL — opcional; vazio desativa a autenticação
	cfg.JWTJWKSURL = getEnvDefault("SB_JWT_JWKS_URL", "")

	// SB_JWT_ISSUER — issuer esperado (opcional; vazio não valida issuer)
	cfg.JWTIssuer = getEnvDefault("SB_JWT_ISSUER", "")

	// SB_JWT_CA_CERT_PATH — certificado CA do IdP (opcional)
	cfg.JWTCACertPath = getEnvDefault("SB_JWT_CA_CERT_PATH", "")

	// SB_JWKS_CLIENT_TIMEOUT — timeout do cliente JWKS (padrão 10s)
	cfg.JWKSClientTimeout, err = getEnvDuration("SB_JWKS_CLIENT_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("SB_JWKS_CLIENT_TIMEOUT: %w", err)
	}

	// SB_JWKS_REFRESH_INTERVAL — atualização das chaves (padrão 1h)
	cfg.JWKSRefreshInterval, err = getEnvDuration("SB_JWKS_REFRESH_INTERVAL", time.Hour)
	if err != nil {
		return nil, fmt.Errorf("SB_JWKS_REFRESH_INTERVAL: %w", err)
	}

	// SB_JWT_LEEWAY — tolerância de relógio (padrão 30s)
	cfg.JWTLeeway, err = getEnvDuration("SB_JWT_LEEWAY", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("SB_JWT_LEEWAY: %w", err)
	}

	// SB_IDP_READINESS_TIMEOUT — timeout da verificação do IdP (padrão 5s)
	cfg.IdPReadinessTimeout, err = getEnvDuration("SB_IDP_READINESS_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("SB_IDP_READINESS_TIMEOUT: %w", err)
	}

	// --- Mapeamento grupos → papéis ---

	// SB_ROLE_ADMIN_GROUPS — grupos do papel admin (padrão "studio-admins")
	cfg.RoleAdminGroups = parseCSV(getEnvDefault("SB_ROLE_ADMIN_GROUPS", "studio-admins"))

	// SB_ROLE_READONLY_GROUPS — grupos do papel readonly (padrão "studio-viewers")
	cfg.RoleReadonlyGroups = parseCSV(getEnvDefault("SB_ROLE_READONLY_GROUPS", "studio-viewers"))

	// --- Graceful shutdown ---

	// SB_SHUTDOWN_TIMEOUT — timeout do graceful shutdown (padrão 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("SB_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("SB_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// DatabaseDSN devolve a string de conexão com o PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// SetupLogger configura o slog-logger global a partir da configuração.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Funções auxiliares ---

// getEnvRequired devolve o valor da variável de ambiente ou erro se ausente.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: variável de ambiente obrigatória não definida", key)
	}
	return val, nil
}

// getEnvDefault devolve o valor da variável de ambiente ou o padrão.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt devolve o valor inteiro da variável de ambiente ou o padrão.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("inteiro inválido: %q", val)
	}
	return n, nil
}

// getEnvDuration devolve um time.Duration da variável de ambiente ou o padrão.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("duração inválida: %q (use o formato Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel converte a string do nível de log em slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("nível inválido %q, aceitos: debug, info, warn, error", level)
	}
}

// parseCSV separa a string por vírgulas em um slice.
// Espaços ao redor são aparados, elementos vazios ignorados.
func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
