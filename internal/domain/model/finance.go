package model

import "time"

// FinanceKind — natureza de um lançamento financeiro.
type FinanceKind string

const (
	// FinanceIncome — receita.
	FinanceIncome FinanceKind = "income"
	// FinanceExpense — despesa.
	FinanceExpense FinanceKind = "expense"
)

// Valid informa se o valor pertence ao conjunto enumerado.
func (k FinanceKind) Valid() bool {
	return k == FinanceIncome || k == FinanceExpense
}

// FinanceEntry — lançamento financeiro do estúdio.
// Armazenado na tabela finances.
type FinanceEntry struct {
	// ID — identificador numérico
	ID int64
	// Kind — receita ou despesa
	Kind FinanceKind
	// Description — descrição do lançamento
	Description string
	// Amount — valor (sempre positivo; o sinal vem de Kind)
	Amount float64
	// OccurredOn — data do lançamento
	OccurredOn time.Time
	// ProjectID — projeto relacionado (opcional)
	ProjectID *int64
	// CreatedAt — momento da criação
	CreatedAt time.Time
}

// FinanceSummary — totais agregados dos lançamentos.
type FinanceSummary struct {
	// Income — soma das receitas
	Income float64
	// Expense — soma das despesas
	Expense float64
	// Net — receitas menos despesas
	Net float64
}
