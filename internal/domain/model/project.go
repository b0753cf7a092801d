package model

import "time"

// ProjectStatus — status do ciclo de vida de um projeto.
type ProjectStatus string

const (
	// ProjectStatusPlanning — em planejamento.
	ProjectStatusPlanning ProjectStatus = "planning"
	// ProjectStatusDevelopment — em desenvolvimento.
	ProjectStatusDevelopment ProjectStatus = "development"
	// ProjectStatusLive — em produção.
	ProjectStatusLive ProjectStatus = "live"
	// ProjectStatusMaintenance — em manutenção.
	ProjectStatusMaintenance ProjectStatus = "maintenance"
	// ProjectStatusArchived — arquivado.
	ProjectStatusArchived ProjectStatus = "archived"
)

// Valid informa se o valor pertence ao conjunto enumerado.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusDevelopment, ProjectStatusLive,
		ProjectStatusMaintenance, ProjectStatusArchived:
		return true
	}
	return false
}

// Project — projeto do estúdio, público (portfólio) ou interno.
// Armazenado na tabela projects.
type Project struct {
	// ID — identificador numérico
	ID int64
	// Title — título do projeto
	Title string
	// Slug — slug para URL pública (opcional)
	Slug *string
	// ClientName — nome do cliente (opcional)
	ClientName *string
	// CoverImage — URL da imagem de capa (opcional)
	CoverImage *string
	// GalleryImages — URLs da galeria, em ordem de exibição
	GalleryImages []string
	// TechStack — tecnologias usadas, ordem apenas para exibição
	TechStack []string
	// Status — status do ciclo de vida
	Status ProjectStatus
	// Budget — orçamento numérico (opcional)
	Budget *float64
	// Deadline — prazo de entrega (opcional)
	Deadline *time.Time
	// Progress — progresso em percentual, 0–100
	Progress int
	// IsPublic — visível no portfólio público
	IsPublic bool
	// IsFeatured — destacado na home
	IsFeatured bool
	// ShortDescription — descrição curta (opcional)
	ShortDescription *string
	// FullDescription — descrição completa (opcional)
	FullDescription *string
	// RepoURL — repositório do código (opcional)
	RepoURL *string
	// LiveURL — endereço em produção (opcional)
	LiveURL *string
	// SourceLeadID — lead de origem quando criado via promoção (opcional)
	SourceLeadID *int64
	// CreatedAt — momento da criação
	CreatedAt time.Time
	// UpdatedAt — momento da última atualização
	UpdatedAt time.Time
}

// ProjectDraft — rascunho de projeto produzido pela promoção de um lead.
// Não é persistido pelo motor de promoção: o admin revisa e salva depois.
type ProjectDraft struct {
	// Title — "Project: " + empresa (ou nome) do lead
	Title string
	// ClientName — nome do contato do lead
	ClientName string
	// ShortDescription — resumo sintetizado com id do lead e mensagem original
	ShortDescription string
	// Budget — valor numérico extraído do orçamento estimado (nil se ausente)
	Budget *float64
	// SourceLeadID — id do lead de origem
	SourceLeadID int64
}
