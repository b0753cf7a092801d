// auth.go — middleware JWT de autenticação e autorização do back-office.
// Extrai os claims do JWT do IdP, mapeia grupos em papéis (admin, readonly)
// e coloca os claims no contexto da requisição.
// Validação de assinatura via JWKS do IdP.
package middleware

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	apierrors "github.com/ferreiradev/studio-backoffice/internal/api/errors"
	"github.com/ferreiradev/studio-backoffice/internal/domain/rbac"
)

// contextKey — tipo para as chaves de contexto (evita colisões).
type contextKey string

const (
	// ContextKeyClaims — claims extraídos, no contexto da requisição.
	ContextKeyClaims contextKey = "jwt_claims"
)

// AuthClaims — claims extraídos e processados do JWT do IdP.
// Colocados no contexto para os handlers a jusante.
type AuthClaims struct {
	// Subject — sub do JWT (id do usuário no IdP).
	Subject string
	// PreferredUsername — preferred_username do JWT.
	PreferredUsername string
	// Email — email do JWT.
	Email string
	// Groups — grupos do usuário no JWT.
	Groups []string
	// Role — papel calculado a partir dos grupos (admin, readonly, "").
	Role string
}

// HasRole verifica se o sujeito tem o papel indicado.
func (c *AuthClaims) HasRole(role string) bool {
	return c.Role == role
}

// HasAnyRole verifica se o papel do sujeito é um dos indicados.
func (c *AuthClaims) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// idpClaims — claims crus do JWT do IdP para o parsing.
type idpClaims struct {
	jwt.RegisteredClaims
	// PreferredUsername — nome do usuário.
	PreferredUsername string `json:"preferred_username"`
	// Email — endereço de e-mail.
	Email string `json:"email"`
	// RealmAccess — estrutura aninhada realm_access.roles.
	RealmAccess *realmAccess `json:"realm_access,omitempty"`
	// Groups — grupos do usuário.
	Groups []string `json:"groups,omitempty"`
}

// realmAccess — estrutura aninhada realm_access do JWT.
type realmAccess struct {
	Roles []string `json:"roles"`
}

// JWTAuth — middleware de autenticação JWT via JWKS do IdP.
type JWTAuth struct {
	jwks           keyfunc.Keyfunc
	logger         *slog.Logger
	adminGroups    []string
	readonlyGroups []string
	issuer         string
	jwtLeeway      time.Duration
}

// NewJWTAuth cria o middleware JWT com JWKS do IdP.
// jwksURL — endpoint JWKS do IdP.
// caCertPath — caminho opcional do certificado CA para TLS.
// issuer — issuer esperado do JWT.
// adminGroups, readonlyGroups — grupos mapeados nos papéis.
// jwksClientTimeout — timeout do cliente HTTP do JWKS (SB_JWKS_CLIENT_TIMEOUT).
// jwksRefreshInterval — intervalo de atualização das chaves (SB_JWKS_REFRESH_INTERVAL).
// jwtLeeway — tolerância de relógio na validação (SB_JWT_LEEWAY).
func NewJWTAuth(
	jwksURL string,
	caCertPath string,
	issuer string,
	adminGroups, readonlyGroups []string,
	jwksClientTimeout time.Duration,
	jwksRefreshInterval time.Duration,
	jwtLeeway time.Duration,
	logger *slog.Logger,
) (*JWTAuth, error) {
	// Cliente HTTP do JWKS (com CA customizado ou o padrão)
	httpClient := http.DefaultClient
	if caCertPath != "" {
		var err error
		httpClient, err = httpClientWithCA(caCertPath, jwksClientTimeout)
		if err != nil {
			return nil, fmt.Errorf("carga do certificado CA %s: %w", caCertPath, err)
		}
		logger.Info("Certificado CA do JWKS adicionado ao pool de confiança",
			slog.String("ca_cert", caCertPath),
		)
	}

	// Storage JWKS com atualização em segundo plano.
	// NoErrorReturnFirstHTTPReq — subimos mesmo com o IdP ainda indisponível.
	storage, err := jwkset.NewStorageFromHTTP(jwksURL, jwkset.HTTPClientStorageOptions{
		Client:                    httpClient,
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           jwksRefreshInterval,
		RefreshErrorHandler: func(_ context.Context, err error) {
			logger.Error("Falha na atualização do JWKS",
				slog.String("error", err.Error()),
				slog.String("url", jwksURL),
			)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("criação do storage JWKS: %w", err)
	}

	k, err := keyfunc.New(keyfunc.Options{
		Storage: storage,
	})
	if err != nil {
		return nil, fmt.Errorf("criação da keyfunc: %w", err)
	}

	return &JWTAuth{
		jwks:           k,
		logger:         logger.With(slog.String("component", "jwt_auth")),
		adminGroups:    adminGroups,
		readonlyGroups: readonlyGroups,
		issuer:         issuer,
		jwtLeeway:      jwtLeeway,
	}, nil
}

// httpClientWithCA cria um cliente HTTP com certificado CA customizado.
func httpClientWithCA(caCertPath string, timeout time.Duration) (*http.Client, error) {
	caCert, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, err
	}

	caCertPool, err := x509.SystemCertPool()
	if err != nil {
		caCertPool = x509.NewCertPool()
	}
	caCertPool.AppendCertsFromPEM(caCert)

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				RootCAs: caCertPool,
			},
		},
	}, nil
}

// NewJWTAuthWithKeyfunc cria o middleware JWT com uma keyfunc fornecida.
// Usado nos testes para injetar um JWKS de mentira.
func NewJWTAuthWithKeyfunc(
	kf keyfunc.Keyfunc,
	issuer string,
	adminGroups, readonlyGroups []string,
	logger *slog.Logger,
) *JWTAuth {
	return &JWTAuth{
		jwks:           kf,
		logger:         logger.With(slog.String("component", "jwt_auth")),
		adminGroups:    adminGroups,
		readonlyGroups: readonlyGroups,
		issuer:         issuer,
	}
}

// Middleware devolve o middleware HTTP de autenticação JWT.
// Extrai o Bearer token, valida a assinatura (RS256), extrai os claims,
// calcula o papel e coloca tudo no contexto.
func (j *JWTAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extrai o Bearer token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apierrors.Unauthorized(w, "Cabeçalho Authorization ausente")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				apierrors.Unauthorized(w, "Formato de Authorization inválido: esperado Bearer <token>")
				return
			}

			tokenString := parts[1]
			if tokenString == "" {
				apierrors.Unauthorized(w, "Bearer token vazio")
				return
			}

			// Parsing e validação do JWT via JWKS
			rawClaims := &idpClaims{}
			parserOpts := []jwt.ParserOption{
				jwt.WithValidMethods([]string{"RS256"}),
				jwt.WithExpirationRequired(),
				jwt.WithLeeway(j.jwtLeeway),
			}
			if j.issuer != "" {
				parserOpts = append(parserOpts, jwt.WithIssuer(j.issuer))
			}

			token, err := jwt.ParseWithClaims(tokenString, rawClaims, j.jwks.KeyfuncCtx(r.Context()), parserOpts...)
			if err != nil {
				j.logger.Debug("Validação de JWT reprovada",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
				)
				apierrors.Unauthorized(w, "Token inválido ou expirado")
				return
			}

			if !token.Valid {
				apierrors.Unauthorized(w, "Token inválido")
				return
			}

			// Extrai o sub
			subject, err := rawClaims.GetSubject()
			if err != nil || subject == "" {
				apierrors.Unauthorized(w, "Token sem sub")
				return
			}

			authClaims := j.buildAuthClaims(rawClaims)

			ctx := context.WithValue(r.Context(), ContextKeyClaims, authClaims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// buildAuthClaims monta AuthClaims a partir dos claims crus do IdP.
// Mapeia grupos → papel; na falta de grupos, cai para realm_access.roles.
func (j *JWTAuth) buildAuthClaims(raw *idpClaims) *AuthClaims {
	claims := &AuthClaims{
		Subject:           raw.Subject,
		PreferredUsername: raw.PreferredUsername,
		Email:             raw.Email,
		Groups:            raw.Groups,
	}

	claims.Role = rbac.MapGroupsToRole(claims.Groups, j.adminGroups, j.readonlyGroups)

	if claims.Role == "" && raw.RealmAccess != nil {
		var mapped []string
		for _, r := range raw.RealmAccess.Roles {
			if rbac.IsValidRole(r) {
				mapped = append(mapped, r)
			}
		}
		claims.Role = rbac.HighestRole(mapped)
	}

	return claims
}

// --- Middlewares de RBAC ---

// RequireRole devolve um middleware que exige um dos papéis indicados.
// Deve ser usado DEPOIS de JWTAuth.Middleware().
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				apierrors.Unauthorized(w, "Claims ausentes no contexto")
				return
			}

			if !claims.HasAnyRole(roles...) {
				apierrors.Forbidden(w, fmt.Sprintf("Permissão insuficiente: papel %s necessário", strings.Join(roles, " ou ")))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireWriteAccess devolve um middleware que restringe métodos de escrita
// ao papel admin. Usuários readonly só passam em GET e HEAD.
// Deve ser usado DEPOIS de JWTAuth.Middleware().
func RequireWriteAccess() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				apierrors.Unauthorized(w, "Claims ausentes no contexto")
				return
			}

			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				if claims.HasAnyRole(rbac.RoleAdmin, rbac.RoleReadonly) {
					next.ServeHTTP(w, r)
					return
				}
				apierrors.Forbidden(w, "Permissão insuficiente para leitura")
				return
			}

			if !claims.HasRole(rbac.RoleAdmin) {
				apierrors.Forbidden(w, "Permissão insuficiente: escrita exige papel admin")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// --- Helpers de contexto ---

// ClaimsFromContext extrai AuthClaims do contexto da requisição.
// Devolve nil se não houver claims.
func ClaimsFromContext(ctx context.Context) *AuthClaims {
	claims, _ := ctx.Value(ContextKeyClaims).(*AuthClaims)
	return claims
}

// SubjectFromContext extrai o sub do contexto da requisição.
// Devolve string vazia se não houver claims.
func SubjectFromContext(ctx context.Context) string {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return ""
	}
	return claims.Subject
}

// RoleFromContext extrai o papel do contexto da requisição.
// Devolve string vazia se não houver claims.
func RoleFromContext(ctx context.Context) string {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return ""
	}
	return claims.Role
}

// --- ReadinessChecker do IdP ---

// IdPReadinessChecker — verificação de disponibilidade do IdP via JWKS.
type IdPReadinessChecker struct {
	jwksURL string
	client  *http.Client
}

// NewIdPReadinessChecker cria o checker de disponibilidade do IdP.
// readinessTimeout — timeout da verificação (SB_IDP_READINESS_TIMEOUT).
func NewIdPReadinessChecker(jwksURL, caCertPath string, readinessTimeout time.Duration) (*IdPReadinessChecker, error) {
	client := &http.Client{Timeout: readinessTimeout}
	if caCertPath != "" {
		var err error
		client, err = httpClientWithCA(caCertPath, readinessTimeout)
		if err != nil {
			return nil, fmt.Errorf("carga do CA para o readiness checker: %w", err)
		}
	}

	return &IdPReadinessChecker{
		jwksURL: jwksURL,
		client:  client,
	}, nil
}

const statusFail = "fail"

// CheckReady verifica a disponibilidade do endpoint JWKS do IdP.
func (k *IdPReadinessChecker) CheckReady() (status, message string) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, k.jwksURL, http.NoBody)
	if err != nil {
		return statusFail, "falha na criação da requisição: " + err.Error()
	}
	resp, err := k.client.Do(req)
	if err != nil {
		return statusFail, fmt.Sprintf("JWKS do IdP indisponível: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusFail, fmt.Sprintf("JWKS do IdP devolveu status %d", resp.StatusCode)
	}

	// O corpo precisa ser JSON válido com chaves
	var jwksResp struct {
		Keys []json.RawMessage `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&jwksResp); err != nil {
		return "degraded", fmt.Sprintf("JWKS do IdP: JSON inválido: %v", err)
	}

	if len(jwksResp.Keys) == 0 {
		return "degraded", "JWKS do IdP: nenhuma chave"
	}

	return "ok", fmt.Sprintf("JWKS disponível, chaves: %d", len(jwksResp.Keys))
}

// Close libera os recursos do middleware JWT.
func (j *JWTAuth) Close() {
	// keyfunc v3 não exige fechamento explícito
}
