// Pacote repository — camada de acesso a dados PostgreSQL.
// Todas as consultas em SQL puro via pgx, sem ORM.
// É o Record Store do sistema: leads, projects, tasks, finances, certificates.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Erros da camada de repositórios.
var (
	// ErrNotFound — registro não encontrado.
	ErrNotFound = errors.New("registro não encontrado")
	// ErrConflict — conflito de unicidade (registro duplicado).
	ErrConflict = errors.New("conflito — registro já existe")
)

// DBTX — interface de execução de SQL.
// Implementada por *pgxpool.Pool e por pgx.Tx, o que permite usar os
// repositórios dentro e fora de transações.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica se o erro é violação de unicidade do PostgreSQL.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// isForeignKeyViolation verifica se o erro é violação de chave estrangeira.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return false
}
