// dto.go — tipos de requisição e resposta JSON da API.
// A camada de domínio não carrega tags JSON; a tradução acontece aqui.
package handlers

import (
	"time"

	"github.com/ferreiradev/studio-backoffice/internal/domain/model"
)

// --- Leads ---

// leadResponse — representação JSON de um lead.
type leadResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Company         *string `json:"company,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Message         *string `json:"message,omitempty"`
	Status          string  `json:"status"`
	ProjectType     *string `json:"project_type,omitempty"`
	EstimatedBudget *string `json:"estimated_budget,omitempty"`
	AdminNotes      *string `json:"admin_notes,omitempty"`
	ProposalLink    *string `json:"proposal_link,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func toLeadResponse(lead *model.Lead) leadResponse {
	return leadResponse{
		ID:              lead.ID,
		Name:            lead.Name,
		Email:           lead.Email,
		Company:         lead.Company,
		Phone:           lead.Phone,
		Message:         lead.Message,
		Status:          string(lead.Status),
		ProjectType:     lead.ProjectType,
		EstimatedBudget: lead.EstimatedBudget,
		AdminNotes:      lead.AdminNotes,
		ProposalLink:    lead.ProposalLink,
		CreatedAt:       lead.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       lead.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toLeadResponses(leads []*model.Lead) []leadResponse {
	out := make([]leadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, toLeadResponse(lead))
	}
	return out
}

// leadListResponse — página de leads com o total.
type leadListResponse struct {
	Items []leadResponse `json:"items"`
	Total int            `json:"total"`
}

// --- Projetos ---

// projectResponse — representação JSON de um projeto.
type projectResponse struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Slug             *string  `json:"slug,omitempty"`
	ClientName       *string  `json:"client_name,omitempty"`
	CoverImage       *string  `json:"cover_image,omitempty"`
	GalleryImages    []string `json:"gallery_images"`
	TechStack        []string `json:"tech_stack"`
	Status           string   `json:"status"`
	Budget           *float64 `json:"budget,omitempty"`
	Deadline         *string  `json:"deadline,omitempty"`
	Progress         int      `json:"progress"`
	IsPublic         bool     `json:"is_public"`
	IsFeatured       bool     `json:"is_featured"`
	ShortDescription *string  `json:"short_description,omitempty"`
	FullDescription  *string  `json:"full_description,omitempty"`
	RepoURL          *string  `json:"repo_url,omitempty"`
	LiveURL          *string  `json:"live_url,omitempty"`
	SourceLeadID     *int64   `json:"source_lead_id,omitempty"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

func toProjectResponse(p *model.Project) projectResponse {
	resp := projectResponse{
		ID:               p.ID,
		Title:            p.Title,
		Slug:             p.Slug,
		ClientName:       p.ClientName,
		CoverImage:       p.CoverImage,
		GalleryImages:    p.GalleryImages,
		TechStack:        p.TechStack,
		Status:           string(p.Status),
		Budget:           p.Budget,
		Progress:         p.Progress,
		IsPublic:         p.IsPublic,
		IsFeatured:       p.IsFeatured,
		ShortDescription: p.ShortDescription,
		FullDescription:  p.FullDescription,
		RepoURL:          p.RepoURL,
		LiveURL:          p.LiveURL,
		SourceLeadID:     p.SourceLeadID,
		CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        p.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if resp.GalleryImages == nil {
		resp.GalleryImages = []string{}
	}
	if resp.TechStack == nil {
		resp.TechStack = []string{}
	}
	if p.Deadline != nil {
		d := p.Deadline.UTC().Format(time.RFC3339)
		resp.Deadline = &d
	}
	return resp
}

// projectListResponse — página de projetos com o total.
type projectListResponse struct {
	Items []projectResponse `json:"items"`
	Total int               `json:"total"`
}

// projectDraftResponse — rascunho produzido pela promoção de um lead.
// Não foi persistido: o admin revisa e envia na criação do projeto.
type projectDraftResponse struct {
	Title            string   `json:"title"`
	ClientName       string   `json:"client_name"`
	ShortDescription string   `json:"short_description"`
	Budget           *float64 `json:"budget,omitempty"`
	SourceLeadID     int64    `json:"source_lead_id"`
}

// --- Tarefas ---

// taskResponse — representação JSON de uma tarefa.
type taskResponse struct {
	ID        int64   `json:"id"`
	ProjectID int64   `json:"project_id"`
	Title     string  `json:"title"`
	Status    string  `json:"status"`
	Priority  string  `json:"priority"`
	DueDate   *string `json:"due_date,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func toTaskResponse(task *model.Task) taskResponse {
	resp := taskResponse{
		ID:        task.ID,
		ProjectID: task.ProjectID,
		Title:     task.Title,
		Status:    string(task.Status),
		Priority:  string(task.Priority),
		CreatedAt: task.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: task.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if task.DueDate != nil {
		d := task.DueDate.UTC().Format(time.RFC3339)
		resp.DueDate = &d
	}
	return resp
}

func toTaskResponses(tasks []*model.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toTaskResponse(task))
	}
	return out
}

// boardResponse — quadro de três raias de um projeto.
type boardResponse struct {
	Todo       []taskResponse `json:"todo"`
	InProgress []taskResponse `json:"in_progress"`
	Done       []taskResponse `json:"done"`
}

func toBoardResponse(board *model.TaskBoard) boardResponse {
	return boardResponse{
		Todo:       toTaskResponses(board.Todo),
		InProgress: toTaskResponses(board.InProgress),
		Done:       toTaskResponses(board.Done),
	}
}

// --- Finanças ---

// financeResponse — representação JSON de um lançamento.
type financeResponse struct {
	ID          int64   `json:"id"`
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	OccurredOn  string  `json:"occurred_on"`
	ProjectID   *int64  `json:"project_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

func toFinanceResponse(entry *model.FinanceEntry) financeResponse {
	return financeResponse{
		ID:          entry.ID,
		Kind:        string(entry.Kind),
		Description: entry.Description,
		Amount:      entry.Amount,
		OccurredOn:  entry.OccurredOn.UTC().Format("2006-01-02"),
		ProjectID:   entry.ProjectID,
		CreatedAt:   entry.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// financeSummaryResponse — totais agregados.
type financeSummaryResponse struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// --- Certificados ---

// certificateResponse — representação JSON de um certificado.
type certificateResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Issuer        string  `json:"issuer"`
	CredentialURL *string `json:"credential_url,omitempty"`
	IssuedOn      *string `json:"issued_on,omitempty"`
	IsPublic      bool    `json:"is_public"`
	CreatedAt     string  `json:"created_at"`
}

func toCertificateResponse(cert *model.Certificate) certificateResponse {
	resp := certificateResponse{
		ID:            cert.ID,
		Title:         cert.Title,
		Issuer:        cert.Issuer,
		CredentialURL: cert.CredentialURL,
		IsPublic:      cert.IsPublic,
		CreatedAt:     cert.CreatedAt.UTC().Format(time.RFC3339),
	}
	if cert.IssuedOn != nil {
		d := cert.IssuedOn.UTC().Format("2006-01-02")
		resp.IssuedOn = &d
	}
	return resp
}
