package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"restoran-kpi-backend/internal/apperr"
	"restoran-kpi-backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Hata mesajlarında struct alanı yerine json adı görünsün
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("kpi_category", func(fl validator.FieldLevel) bool {
		switch models.KPICategory(fl.Field().String()) {
		case models.CategoryOperasyon, models.CategoryMutfak, models.CategoryMusteriDeneyimi, models.CategoryPersonel:
			return true
		}
		return false
	})
	_ = v.RegisterValidation("kpi_period", func(fl validator.FieldLevel) bool {
		switch models.KPIPeriod(fl.Field().String()) {
		case models.PeriodGunluk, models.PeriodHaftalik, models.PeriodAylik, models.PeriodYillik:
			return true
		}
		return false
	})

	return v
}

// Struct, validate tag'lerini çalıştırır ve hataları apperr.Validation'a çevirir.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation("Geçersiz veri")
	}

	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return apperr.Validation("Geçersiz veri", fields...)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "zorunlu alan"
	case "oneof":
		return fmt.Sprintf("şu değerlerden biri olmalı: %s", fe.Param())
	case "min", "gte":
		return fmt.Sprintf("en az %s olmalı", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("en fazla %s olmalı", fe.Param())
	case "kpi_category":
		return "geçersiz kategori"
	case "kpi_period":
		return "geçersiz periyot"
	default:
		return fmt.Sprintf("geçersiz değer (%s)", fe.Tag())
	}
}
