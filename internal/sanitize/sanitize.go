// Pacote sanitize — saneamento da entrada pública do formulário de contato.
// Remove todo HTML (tags e atributos) antes da persistência, para que o
// conteúdo possa ser renderizado depois sem risco de injeção de script.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer — saneador de texto livre vindo de visitantes anônimos.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New cria o saneador com a política estrita do bluemonday:
// nenhuma tag e nenhum atributo sobrevivem.
func New() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text remove todo HTML do texto e normaliza espaços nas bordas.
// O bluemonday devolve entidades escapadas; desfazemos o escape porque o
// valor é armazenado como texto puro, não como HTML.
func (s *Sanitizer) Text(input string) string {
	clean := s.policy.Sanitize(input)
	return strings.TrimSpace(html.UnescapeString(clean))
}

// OptionalText aplica Text a um campo opcional.
// Resultado vazio vira nil, para não persistir strings vazias.
func (s *Sanitizer) OptionalText(input *string) *string {
	if input == nil {
		return nil
	}
	clean := s.Text(*input)
	if clean == "" {
		return nil
	}
	return &clean
}

// Email normaliza um e-mail: trim + lowercase.
// A validação de formato fica na camada de serviço.
func Email(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
