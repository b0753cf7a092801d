package model

import "time"

// LeadStatus — status do funil de um lead.
// Conjunto fechado: new → contacted → negotiating → converted | archived.
type LeadStatus string

const (
	// LeadStatusNew — lead recém-chegado, ainda sem contato.
	LeadStatusNew LeadStatus = "new"
	// LeadStatusContacted — primeiro contato realizado.
	LeadStatusContacted LeadStatus = "contacted"
	// LeadStatusNegotiating — proposta em negociação.
	LeadStatusNegotiating LeadStatus = "negotiating"
	// LeadStatusConverted — lead convertido em projeto (via promoção).
	LeadStatusConverted LeadStatus = "converted"
	// LeadStatusArchived — lead arquivado sem conversão.
	LeadStatusArchived LeadStatus = "archived"
)

// Valid informa se o valor pertence ao conjunto enumerado.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusNegotiating,
		LeadStatusConverted, LeadStatusArchived:
		return true
	}
	return false
}

// Terminal informa se o status encerra o fluxo normal do funil.
// converted e archived não recebem mais movimentação de funil.
func (s LeadStatus) Terminal() bool {
	return s == LeadStatusConverted || s == LeadStatusArchived
}

// Lead — contato de um cliente em potencial.
// Armazenado na tabela leads.
type Lead struct {
	// ID — identificador numérico (atribuído pelo banco)
	ID int64
	// Name — nome do contato (obrigatório, ≤100 caracteres)
	Name string
	// Email — e-mail normalizado (trim + lowercase)
	Email string
	// Company — empresa (opcional, ≤150 caracteres)
	Company *string
	// Phone — telefone (opcional)
	Phone *string
	// Message — mensagem enviada no formulário público (opcional, ≤2000)
	Message *string
	// Status — posição no funil
	Status LeadStatus
	// ProjectType — tipo de projeto desejado (opcional)
	ProjectType *string
	// EstimatedBudget — orçamento estimado em texto livre (opcional)
	EstimatedBudget *string
	// AdminNotes — anotações internas do admin (opcional)
	AdminNotes *string
	// ProposalLink — link da proposta enviada (opcional)
	ProposalLink *string
	// IPAddress — endereço de origem capturado na submissão (para rate limit)
	IPAddress *string
	// CreatedAt — momento da criação
	CreatedAt time.Time
	// UpdatedAt — momento da última atualização
	UpdatedAt time.Time
}

// LeadPatch — operação tipada de atualização parcial de um Lead.
// Conjunto fechado de variantes no lugar de um mapa campo→valor aberto.
type LeadPatch interface {
	// leadPatch — marcador não exportado; fecha o conjunto de variantes.
	leadPatch()
}

// SetPhone — atualiza o telefone do lead.
type SetPhone struct{ Value *string }

// SetProjectType — atualiza o tipo de projeto.
type SetProjectType struct{ Value *string }

// SetBudgetEstimate — atualiza o orçamento estimado (texto livre).
type SetBudgetEstimate struct{ Value *string }

// SetNotes — atualiza as anotações internas.
type SetNotes struct{ Value *string }

// SetProposalLink — atualiza o link da proposta.
type SetProposalLink struct{ Value *string }

func (SetPhone) leadPatch()          {}
func (SetProjectType) leadPatch()    {}
func (SetBudgetEstimate) leadPatch() {}
func (SetNotes) leadPatch()          {}
func (SetProposalLink) leadPatch()   {}

// LeadFilter — parâmetros explícitos de listagem de leads.
// Substitui estado ambiente de filtros da UI por consulta pura.
type LeadFilter struct {
	// Status — filtra por status do funil (nil = todos)
	Status *LeadStatus
	// Search — busca em name, email e company (substring, case-insensitive)
	Search string
	// Limit — tamanho da página
	Limit int
	// Offset — deslocamento da página
	Offset int
}
