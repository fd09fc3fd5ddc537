package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lib/pq"
)

// AppError é a interface central para todos os erros customizados do serviço.
// Ela permite que o código externo (Service, Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION", "NOT_FOUND", "INTERNAL")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// Mensagem literal das regras de estoque insuficiente.
const MsgInsufficientInventory = "insufficient inventory"

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return e.Msg }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// BusinessRuleError representa a violação de uma regra de negócio detectada
// no meio de uma operação (ex.: estoque insuficiente). Provoca rollback.
type BusinessRuleError struct {
	Msg string
}

func (e *BusinessRuleError) Error() string    { return e.Msg }
func (e *BusinessRuleError) Category() string { return "BUSINESS_RULE" }
func (e *BusinessRuleError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *BusinessRuleError) Unwrap() error    { return nil }

// NewBusinessRuleError cria um novo erro de regra de negócio.
func NewBusinessRuleError(msg string) AppError {
	return &BusinessRuleError{Msg: msg}
}

// NewInsufficientInventoryError é o atalho para a regra de estoque não negativo.
func NewInsufficientInventoryError() AppError {
	return NewBusinessRuleError(MsgInsufficientInventory)
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return e.Msg }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito de estado (OCC, registro duplicado).
type ConflictError struct {
	Msg string
	Err error
}

func (e *ConflictError) Error() string    { return e.Msg }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return e.Err }

// NewConflictError cria um novo erro de conflito (usado em OCC).
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string    { return e.Msg }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError classifica um erro do driver PostgreSQL. Violação de unicidade
// vira ConflictError (corrida na criação do par produto/loja); o resto é InternalError.
func NewDBError(msg string, err error) AppError {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return &ConflictError{Msg: msg + " (DB): registro duplicado", Err: err}
		case "check_violation":
			return &InternalError{Msg: msg + " (DB): restrição violada " + pqErr.Constraint, Err: err}
		}
	}
	return &InternalError{Msg: msg + " (DB)", Err: err}
}

// FullMessage percorre a cadeia de erros (Unwrap) e junta as mensagens com " -> ".
// Mensagens que já repetem o erro interno (fmt.Errorf("...: %w")) são aparadas.
func FullMessage(err error) string {
	var messages []string
	for err != nil {
		msg := err.Error()
		next := errors.Unwrap(err)
		if next != nil {
			msg = strings.TrimSuffix(msg, ": "+next.Error())
		}
		if msg != "" {
			messages = append(messages, msg)
		}
		err = next
	}
	return strings.Join(messages, " -> ")
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, categoria e mensagem.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratar como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", fmt.Sprintf("unexpected error: %v", err)
}
