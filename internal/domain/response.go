package domain

// APIResponse é o envelope padronizado de todas as respostas da API.
// @Description Envelope padronizado: sucesso traz data, falha traz error (e errors na validação).
type APIResponse struct {
	IsSuccess bool         `json:"isSuccess" example:"false"`
	Data      interface{}  `json:"data"`
	Error     *string      `json:"error" example:"Error updating product stock: insufficient inventory"`
	Errors    []FieldError `json:"errors,omitempty"`
}

// NewResponse converte um Result no envelope da API.
func NewResponse[T any](result Result[T]) APIResponse {
	switch r := result.(type) {
	case Success[T]:
		return APIResponse{IsSuccess: true, Data: r.Data}
	case Failure[T]:
		msg := r.Message
		return APIResponse{IsSuccess: false, Error: &msg, Errors: r.Errors}
	default:
		msg := "unexpected result"
		return APIResponse{IsSuccess: false, Error: &msg}
	}
}
