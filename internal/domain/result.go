package domain

import "strings"

// Result é o desfecho de uma operação do motor de estoque.
// Só existem duas variantes: Success e Failure.
type Result[T any] interface {
	isResult(T)
}

// Success carrega o payload tipado de uma operação bem-sucedida.
type Success[T any] struct {
	Data T
}

// Failure carrega a mensagem legível e, para falhas de validação, a lista por campo.
type Failure[T any] struct {
	Message string
	Errors  []FieldError
}

func (Success[T]) isResult(T) {}
func (Failure[T]) isResult(T) {}

// FieldError é uma falha de validação associada a um campo de entrada.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Ok cria um Result de sucesso.
func Ok[T any](data T) Result[T] {
	return Success[T]{Data: data}
}

// Fail cria um Result de falha com uma mensagem única.
func Fail[T any](message string) Result[T] {
	return Failure[T]{Message: message}
}

// Invalid cria um Result de falha a partir das falhas de validação acumuladas.
func Invalid[T any](errs []FieldError) Result[T] {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return Failure[T]{Message: strings.Join(messages, "; "), Errors: errs}
}
