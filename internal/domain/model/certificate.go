package model

import "time"

// Certificate — certificado/credencial exibido publicamente no site.
// Armazenado na tabela certificates.
type Certificate struct {
	// ID — identificador numérico
	ID int64
	// Title — título do certificado
	Title string
	// Issuer — instituição emissora
	Issuer string
	// CredentialURL — link de verificação da credencial (opcional)
	CredentialURL *string
	// IssuedOn — data de emissão (opcional)
	IssuedOn *time.Time
	// IsPublic — visível no site público
	IsPublic bool
	// CreatedAt — momento da criação
	CreatedAt time.Time
}
