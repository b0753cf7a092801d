// certificates.go — serviço de certificados exibidos no site público.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
	"github.com/ferreiradev/studio-backoffice/internal/repository"
)

// CertificateService — serviço de certificados.
type CertificateService struct {
	repo   repository.CertificateRepository
	logger *slog.Logger
}

// NewCertificateService cria o serviço de certificados.
func NewCertificateService(repo repository.CertificateRepository, logger *slog.Logger) *CertificateService {
	return &CertificateService{
		repo:   repo,
		logger: logger.With(slog.String("component", "certificate_service")),
	}
}

// validateCertificate valida os campos obrigatórios de um certificado.
func validateCertificate(cert *model.Certificate) error {
	cert.Title = strings.TrimSpace(cert.Title)
	cert.Issuer = strings.TrimSpace(cert.Issuer)
	if cert.Title == "" {
		return fmt.Errorf("%w: title é obrigatório", ErrValidation)
	}
	if cert.Issuer == "" {
		return fmt.Errorf("%w: issuer é obrigatório", ErrValidation)
	}
	return nil
}

// Create persiste um novo certificado.
func (s *CertificateService) Create(ctx context.Context, cert *model.Certificate) (*model.Certificate, error) {
	if err := validateCertificate(cert); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, cert); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.logger.Info("Certificado criado",
		slog.Int64("certificate_id", cert.ID),
		slog.String("title", cert.Title),
	)
	return cert, nil
}

// Get devolve um certificado pelo id.
func (s *CertificateService) Get(ctx context.Context, id int64) (*model.Certificate, error) {
	cert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: certificado %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return cert, nil
}

// List devolve certificados, opcionalmente só os públicos.
func (s *CertificateService) List(ctx context.Context, onlyPublic bool, limit, offset int) ([]*model.Certificate, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	certs, err := s.repo.List(ctx, onlyPublic, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return certs, nil
}

// Update persiste os campos mutáveis do certificado.
func (s *CertificateService) Update(ctx context.Context, cert *model.Certificate) (*model.Certificate, error) {
	if err := validateCertificate(cert); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, cert); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: certificado %d", ErrNotFound, cert.ID)
		}
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return cert, nil
}

// Delete exclui o certificado definitivamente.
func (s *CertificateService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: certificado %d", ErrNotFound, id)
		}
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.logger.Info("Certificado excluído", slog.Int64("certificate_id", id))
	return nil
}
