// Pacote errors — construtores das respostas de erro padronizadas da API.
// Formato único: {"error": {"code": "...", "message": "..."}}.
// Toda resposta HTTP de erro deve passar por WriteError.
package errors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro legíveis por máquina expostos pela API.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeConflict        = "CONFLICT"
	CodeInvalidState    = "INVALID_STATE"
	CodeRateLimited     = "RATE_LIMITED"
	CodeStoreError      = "STORE_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
)

// errorBody — corpo da resposta de erro.
type errorBody struct {
	Error errorDetail `json:"error"`
}

// errorDetail — detalhes do erro.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError grava a resposta de erro no formato padronizado.
// statusCode — código HTTP; code — código de máquina; message — descrição.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// --- Construtores para os erros típicos ---

// ValidationError — 400 entrada inválida.
func ValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, CodeValidationError, message)
}

// NotFound — 404 recurso não encontrado.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, CodeNotFound, message)
}

// Unauthorized — 401 autenticação necessária.
func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden — 403 permissão insuficiente.
func Forbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, CodeForbidden, message)
}

// Conflict — 409 conflito (recurso duplicado).
func Conflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, CodeConflict, message)
}

// InvalidState — 409 operação incompatível com o estado atual do recurso.
func InvalidState(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, CodeInvalidState, message)
}

// RateLimited — 429 limite de frequência excedido.
func RateLimited(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, CodeRateLimited, message)
}

// StoreError — 500 falha na camada de persistência.
func StoreError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, CodeStoreError, message)
}

// InternalError — 500 erro interno.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, CodeInternalError, message)
}
