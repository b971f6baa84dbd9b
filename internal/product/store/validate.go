package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"

	perrors "github.com/abgdnv/inventory/internal/product/errors"
	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that reports JSON field names and knows
// the notblank, finite, wholenumber and intrange rules.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		return !math.IsInf(fl.Field().Float(), 0)
	})
	_ = v.RegisterValidation("wholenumber", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f == math.Trunc(f)
	})
	// float64(math.MaxInt) rounds up past the largest int, so the bound is exclusive.
	_ = v.RegisterValidation("intrange", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f > float64(math.MinInt) && f < float64(math.MaxInt)
	})
	return v
}

// checkNewProduct validates p and returns the first violation in this order:
// missing fields, price, stock.
func checkNewProduct(v *validator.Validate, p NewProduct) error {
	err := v.Struct(p)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", perrors.ErrValidation, err)
	}
	first := validationErrors[0]
	for _, fieldErr := range validationErrors[1:] {
		if violationRank(fieldErr) < violationRank(first) {
			first = fieldErr
		}
	}
	return &perrors.ValidationError{Field: first.Field(), Rule: first.Tag()}
}

func violationRank(fieldErr validator.FieldError) int {
	switch {
	case fieldErr.Tag() == "required" || fieldErr.Tag() == "notblank":
		return 0
	case fieldErr.Field() == "price":
		return 1
	default:
		return 2
	}
}

// DecodeNewProduct reads a single creation input from JSON.
// A value of the wrong JSON type is reported as a ValidationError on that field.
func DecodeNewProduct(r io.Reader) (NewProduct, error) {
	var p NewProduct
	if err := decode(r, &p); err != nil {
		return NewProduct{}, err
	}
	return p, nil
}

// DecodeNewProducts reads a JSON array of creation inputs.
func DecodeNewProducts(r io.Reader) ([]NewProduct, error) {
	var list []NewProduct
	if err := decode(r, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func decode(r io.Reader, v any) error {
	err := json.NewDecoder(r).Decode(v)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field[strings.LastIndex(typeErr.Field, ".")+1:]
		return &perrors.ValidationError{Field: field, Rule: perrors.RuleType}
	}
	return fmt.Errorf("%w: %w", perrors.ErrValidation, err)
}
