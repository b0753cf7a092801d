package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
)

// CertificateRepository — interface CRUD da tabela certificates.
type CertificateRepository interface {
	// Create insere um novo certificado.
	Create(ctx context.Context, cert *model.Certificate) error
	// GetByID devolve um certificado pelo id.
	GetByID(ctx context.Context, id int64) (*model.Certificate, error)
	// List devolve certificados, opcionalmente só os públicos.
	List(ctx context.Context, onlyPublic bool, limit, offset int) ([]*model.Certificate, error)
	// Update persiste os campos mutáveis do certificado.
	Update(ctx context.Context, cert *model.Certificate) error
	// Delete remove o certificado.
	Delete(ctx context.Context, id int64) error
}

// certificateRepo — implementação de CertificateRepository.
type certificateRepo struct {
	db DBTX
}

// NewCertificateRepository cria o repositório de certificados.
func NewCertificateRepository(db DBTX) CertificateRepository {
	return &certificateRepo{db: db}
}

func (r *certificateRepo) Create(ctx context.Context, cert *model.Certificate) error {
	query := `
		INSERT INTO certificates (title, issuer, credential_url, issued_on, is_public)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		cert.Title, cert.Issuer, cert.CredentialURL, cert.IssuedOn, cert.IsPublic,
	).Scan(&cert.ID, &cert.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar certificado: %w", err)
	}
	return nil
}

func (r *certificateRepo) GetByID(ctx context.Context, id int64) (*model.Certificate, error) {
	query := `
		SELECT id, title, issuer, credential_url, issued_on, is_public, created_at
		FROM certificates
		WHERE id = $1`

	cert := &model.Certificate{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&cert.ID, &cert.Title, &cert.Issuer, &cert.CredentialURL,
		&cert.IssuedOn, &cert.IsPublic, &cert.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar certificado: %w", err)
	}
	return cert, nil
}

func (r *certificateRepo) List(ctx context.Context, onlyPublic bool, limit, offset int) ([]*model.Certificate, error) {
	where := ""
	if onlyPublic {
		where = "WHERE is_public"
	}

	query := fmt.Sprintf(`
		SELECT id, title, issuer, credential_url, issued_on, is_public, created_at
		FROM certificates
		%s
		ORDER BY issued_on DESC NULLS LAST, id DESC
		LIMIT $1 OFFSET $2`, where)

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar certificados: %w", err)
	}
	defer rows.Close()

	var result []*model.Certificate
	for rows.Next() {
		cert := &model.Certificate{}
		if err := rows.Scan(
			&cert.ID, &cert.Title, &cert.Issuer, &cert.CredentialURL,
			&cert.IssuedOn, &cert.IsPublic, &cert.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao ler certificado: %w", err)
		}
		result = append(result, cert)
	}
	return result, rows.Err()
}

func (r *certificateRepo) Update(ctx context.Context, cert *model.Certificate) error {
	query := `
		UPDATE certificates
		SET title = $2, issuer = $3, credential_url = $4, issued_on = $5, is_public = $6
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		cert.ID, cert.Title, cert.Issuer, cert.CredentialURL, cert.IssuedOn, cert.IsPublic,
	)
	if err != nil {
		return fmt.Errorf("erro ao atualizar certificado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *certificateRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM certificates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao excluir certificado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
