// Package validation contém as pré-condições das operações de estoque.
// As funções são puras: não acessam o banco e acumulam todas as falhas.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"retailstock/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Usa o nome JSON do campo nos erros, que é o que o cliente enviou.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// IDs só com espaços contam como ausentes.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// ValidateStockAdjustment valida uma entrada/saída de estoque.
func ValidateStockAdjustment(req domain.StockAdjustmentRequest) []domain.FieldError {
	return check(req)
}

// ValidateStockTransfer valida uma transferência entre lojas.
func ValidateStockTransfer(req domain.StockTransferRequest) []domain.FieldError {
	return check(req)
}

// ValidateMinimumStock valida a atualização do estoque mínimo.
func ValidateMinimumStock(req domain.MinimumStockRequest) []domain.FieldError {
	return check(req)
}

// ValidateStoreID valida o identificador de loja das consultas por loja.
func ValidateStoreID(storeID string) []domain.FieldError {
	if strings.TrimSpace(storeID) == "" {
		return []domain.FieldError{{Field: "storeId", Message: "StoreId is required"}}
	}
	return nil
}

func check(s interface{}) []domain.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domain.FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domain.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// message traduz a regra violada na mensagem exposta pela API.
func message(fe validator.FieldError) string {
	name := displayName(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", name)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be %s", name, strings.Join(strings.Fields(fe.Param()), " or "))
	case "nefield":
		return "SourceStoreId and TargetStoreId must be different"
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

// displayName converte "sourceStoreId" em "SourceStoreId".
func displayName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
