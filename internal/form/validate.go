package form

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

var validate = validator.New()

// Validate is the range/date gate in front of the engine: the generator and
// mutator assume pre-validated input and perform no bounds defense of their
// own. Returns nil or a ValidationErrors listing every violated rule.
func Validate(p Parameters, fullPrice int64, now time.Time) error {
	var errs ValidationErrors

	if err := validate.Struct(p); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return ValidationErrors{{Code: "VALIDATION_FAILED", Message: err.Error()}}
		}
		for _, fe := range verrs {
			errs = append(errs, fieldError(fe))
		}
	}

	if p.Deposit+p.Prepayment > fullPrice {
		errs = append(errs, ValidationError{
			Code:    "UPFRONT_EXCEEDS_PRICE",
			Message: "Сумма задатка и ПВ не может превышать полную стоимость",
		})
	}

	// Month granularity: a date earlier this month is still acceptable.
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if p.FirstInstallmentDate.Before(monthStart) {
		errs = append(errs, ValidationError{
			Code:    "DATE_IN_PAST",
			Message: "Дата ПВ не может быть в прошлом",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func fieldError(fe validator.FieldError) ValidationError {
	switch fe.StructField() {
	case "PlanRate":
		return ValidationError{Code: "PLAN_RATE_INVALID", Message: "Форма оплаты должна быть 20% или 30%"}
	case "Deposit":
		return ValidationError{Code: "DEPOSIT_NEGATIVE", Message: "Задаток не может быть отрицательным"}
	case "Prepayment":
		return ValidationError{Code: "PREPAYMENT_NEGATIVE", Message: "ПВ не может быть отрицательным"}
	case "FirstInstallmentDate":
		return ValidationError{Code: "DATE_REQUIRED", Message: "Дата ПВ обязательна"}
	case "InstallmentCount":
		return ValidationError{Code: "COUNT_OUT_OF_RANGE", Message: "Количество платежей должно быть от 12 до 48"}
	default:
		return ValidationError{Code: "VALIDATION_FAILED", Message: fe.Error()}
	}
}
