// budget.go — extração de valor numérico do orçamento em texto livre.
package service

import (
	"regexp"
	"strconv"
	"strings"
)

// budgetRunRe — primeira sequência de dígitos com separadores embutidos.
// Exemplos de captura: "5.000" em "R$ 5.000 - R$ 10.000"; "1.234,56".
var budgetRunRe = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)*`)

// ParseBudget extrai um valor numérico de um orçamento em texto livre.
//
// Regra determinística: considera a primeira sequência máxima de dígitos
// com '.' ou ',' embutidos. O último separador é a vírgula decimal quando
// seguido de 1 ou 2 dígitos; todos os demais separadores são agrupamento
// de milhar e descartados. Resultado não positivo (ou ausência de
// sequência numérica) devolve nil.
//
//	"R$ 5.000 - R$ 10.000" → 5000
//	"1.234,56"             → 1234.56
//	"uns 10 mil"           → 10
//	"a combinar"           → nil
func ParseBudget(raw string) *float64 {
	run := budgetRunRe.FindString(raw)
	if run == "" {
		return nil
	}

	normalized := normalizeBudgetRun(run)

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil || value <= 0 {
		return nil
	}
	return &value
}

// normalizeBudgetRun remove separadores de milhar e converte a vírgula
// decimal em ponto.
func normalizeBudgetRun(run string) string {
	lastSep := strings.LastIndexAny(run, ".,")
	if lastSep == -1 {
		return run
	}

	decimals := len(run) - lastSep - 1
	if decimals >= 1 && decimals <= 2 {
		// Último separador é decimal; os demais são agrupamento.
		intPart := strings.Map(dropSeparators, run[:lastSep])
		return intPart + "." + run[lastSep+1:]
	}

	// Nenhum separador decimal: todos são agrupamento.
	return strings.Map(dropSeparators, run)
}

// dropSeparators remove '.' e ',' de uma sequência numérica.
func dropSeparators(r rune) rune {
	if r == '.' || r == ',' {
		return -1
	}
	return r
}
