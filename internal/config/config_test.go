package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

// setEnvs define variáveis de ambiente para o teste.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

// minimalEnvs devolve o conjunto mínimo de variáveis obrigatórias.
func minimalEnvs() map[string]string {
	return map[string]string{
		"SB_DB_HOST":     "localhost",
		"SB_DB_NAME":     "studio",
		"SB_DB_USER":     "studio",
		"SB_DB_PASSWORD": "secret",
	}
}

func TestLoad_MinimalConfig(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() devolveu erro: %v", err)
	}

	// Valores padrão
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, esperado 8080", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, esperado Info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, esperado json", cfg.LogFormat)
	}
	if cfg.DBHost != "localhost" {
		t.Errorf("DBHost = %q, esperado localhost", cfg.DBHost)
	}
	if cfg.DBPort != 5432 {
		t.Errorf("DBPort = %d, esperado 5432", cfg.DBPort)
	}
	if cfg.DBSSLMode != "disable" {
		t.Errorf("DBSSLMode = %q, esperado disable", cfg.DBSSLMode)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, esperado vazio", cfg.RedisAddr)
	}
	if cfg.RateLimit != 1 {
		t.Errorf("RateLimit = %d, esperado 1", cfg.RateLimit)
	}
	if cfg.RateWindow != time.Hour {
		t.Errorf("RateWindow = %v, esperado 1h", cfg.RateWindow)
	}
	if cfg.AuthEnabled() {
		t.Error("AuthEnabled() = true sem SB_JWT_JWKS_URL")
	}
	if cfg.JWKSRefreshInterval != time.Hour {
		t.Errorf("JWKSRefreshInterval = %v, esperado 1h", cfg.JWKSRefreshInterval)
	}
	if cfg.JWTLeeway != 30*time.Second {
		t.Errorf("JWTLeeway = %v, esperado 30s", cfg.JWTLeeway)
	}
	if len(cfg.RoleAdminGroups) != 1 || cfg.RoleAdminGroups[0] != "studio-admins" {
		t.Errorf("RoleAdminGroups = %v, esperado [studio-admins]", cfg.RoleAdminGroups)
	}
	if len(cfg.RoleReadonlyGroups) != 1 || cfg.RoleReadonlyGroups[0] != "studio-viewers" {
		t.Errorf("RoleReadonlyGroups = %v, esperado [studio-viewers]", cfg.RoleReadonlyGroups)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, esperado 5s", cfg.ShutdownTimeout)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	envs := minimalEnvs()
	envs["SB_PORT"] = "9090"
	envs["SB_LOG_LEVEL"] = "debug"
	envs["SB_LOG_FORMAT"] = "text"
	envs["SB_DB_PORT"] = "5433"
	envs["SB_DB_SSL_MODE"] = "require"
	envs["SB_REDIS_ADDR"] = "redis:6379"
	envs["SB_RATE_LIMIT"] = "5"
	envs["SB_RATE_WINDOW"] = "30m"
	envs["SB_JWT_JWKS_URL"] = "https://idp.example.com/realms/studio/protocol/openid-connect/certs"
	envs["SB_JWT_ISSUER"] = "https://idp.example.com/realms/studio"
	envs["SB_ROLE_ADMIN_GROUPS"] = "admins, super-admins"
	envs["SB_ROLE_READONLY_GROUPS"] = "viewers, guests"
	envs["SB_SHUTDOWN_TIMEOUT"] = "10s"
	setEnvs(t, envs)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() devolveu erro: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, esperado 9090", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, esperado Debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, esperado text", cfg.LogFormat)
	}
	if cfg.DBPort != 5433 {
		t.Errorf("DBPort = %d, esperado 5433", cfg.DBPort)
	}
	if cfg.DBSSLMode != "require" {
		t.Errorf("DBSSLMode = %q, esperado require", cfg.DBSSLMode)
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Errorf("RedisAddr = %q, esperado redis:6379", cfg.RedisAddr)
	}
	if cfg.RateLimit != 5 {
		t.Errorf("RateLimit = %d, esperado 5", cfg.RateLimit)
	}
	if cfg.RateWindow != 30*time.Minute {
		t.Errorf("RateWindow = %v, esperado 30m", cfg.RateWindow)
	}
	if !cfg.AuthEnabled() {
		t.Error("AuthEnabled() = false com SB_JWT_JWKS_URL definido")
	}
	if len(cfg.RoleAdminGroups) != 2 || cfg.RoleAdminGroups[0] != "admins" || cfg.RoleAdminGroups[1] != "super-admins" {
		t.Errorf("RoleAdminGroups = %v, esperado [admins super-admins]", cfg.RoleAdminGroups)
	}
	if len(cfg.RoleReadonlyGroups) != 2 || cfg.RoleReadonlyGroups[0] != "viewers" || cfg.RoleReadonlyGroups[1] != "guests" {
		t.Errorf("RoleReadonlyGroups = %v, esperado [viewers guests]", cfg.RoleReadonlyGroups)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, esperado 10s", cfg.ShutdownTimeout)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	requiredVars := []string{
		"SB_DB_HOST", "SB_DB_NAME", "SB_DB_USER", "SB_DB_PASSWORD",
	}

	for _, missing := range requiredVars {
		t.Run(missing, func(t *testing.T) {
			envs := minimalEnvs()
			delete(envs, missing)
			for k := range minimalEnvs() {
				os.Unsetenv(k)
			}
			setEnvs(t, envs)

			_, err := Load()
			if err == nil {
				t.Errorf("Load() não devolveu erro sem %s", missing)
			}
		})
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"zero", "0"},
		{"acima do limite", "70000"},
		{"não numérico", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envs := minimalEnvs()
			envs["SB_PORT"] = tt.value
			for k := range minimalEnvs() {
				os.Unsetenv(k)
			}
			setEnvs(t, envs)

			_, err := Load()
			if err == nil {
				t.Errorf("Load() não devolveu erro com SB_PORT=%q", tt.value)
			}
		})
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	envs := minimalEnvs()
	envs["SB_LOG_LEVEL"] = "verbose"
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Error("Load() não devolveu erro com SB_LOG_LEVEL=verbose")
	}
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	envs := minimalEnvs()
	envs["SB_LOG_FORMAT"] = "xml"
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Error("Load() não devolveu erro com SB_LOG_FORMAT=xml")
	}
}

func TestLoad_InvalidSSLMode(t *testing.T) {
	envs := minimalEnvs()
	envs["SB_DB_SSL_MODE"] = "prefer"
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Error("Load() não devolveu erro com SB_DB_SSL_MODE=prefer")
	}
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	envs := minimalEnvs()
	envs["SB_RATE_LIMIT"] = "0"
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Error("Load() não devolveu erro com SB_RATE_LIMIT=0")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	envs := minimalEnvs()
	envs["SB_RATE_WINDOW"] = "abc"
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Error("Load() não devolveu erro com SB_RATE_WINDOW=abc")
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db.example.com",
		DBPort:     5432,
		DBName:     "studio",
		DBUser:     "user",
		DBPassword: "pass",
		DBSSLMode:  "disable",
	}
	expected := "host=db.example.com port=5432 dbname=studio user=user password=pass sslmode=disable"
	if dsn := cfg.DatabaseDSN(); dsn != expected {
		t.Errorf("DatabaseDSN() = %q, esperado %q", dsn, expected)
	}
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name   string
		format string
	}{
		{"json", "json"},
		{"text", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				LogLevel:  slog.LevelInfo,
				LogFormat: tt.format,
			}
			logger := SetupLogger(cfg)
			if logger == nil {
				t.Error("SetupLogger() devolveu nil")
			}
		})
	}
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"admins", []string{"admins"}},
		{"admins, viewers", []string{"admins", "viewers"}},
		{"admins,,viewers,", []string{"admins", "viewers"}},
		{" admins , viewers , guests ", []string{"admins", "viewers", "guests"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseCSV(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("parseCSV(%q) = %v (len %d), esperado %v (len %d)",
					tt.input, result, len(result), tt.expected, len(tt.expected))
			}
			for i, v := range result {
				if v != tt.expected[i] {
					t.Errorf("parseCSV(%q)[%d] = %q, esperado %q", tt.input, i, v, tt.expected[i])
				}
			}
		})
	}
}
