package config

import (
	"SmartBudget/internal/entity"
	"SmartBudget/pkg/money"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = validate.RegisterValidation("money", validateMoney)
	_ = validate.RegisterValidation("notfuture", validateNotFuture)

	return validate
}

// validateMoney accepts amounts that stay above zero once rounded to cents.
func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return money.IsPositive(d)
}

// validateNotFuture accepts YYYY-MM-DD dates up to today in UTC. Malformed dates are left to the datetime tag.
func validateNotFuture(fl validator.FieldLevel) bool {
	d, err := entity.ParseDate(fl.Field().String())
	if err != nil {
		return true
	}
	return !d.After(entity.TruncateDay(time.Now()))
}
