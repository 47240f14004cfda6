// pkg/config/validate.go

package config

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/CodeMonkeyCybersecurity/passgen/pkg/charset"
	cerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance reports fields by their mapstructure key, which is also
// the flag name the user typed.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks ranges and enumerations and that every category name is
// known. All problems are reported together.
func (s Settings) Validate() error {
	var result *multierror.Error

	if err := validatorInstance().Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if !cerr.As(err, &fieldErrs) {
			return cerr.Wrap(err, "validate settings")
		}
		for _, fe := range fieldErrs {
			result = multierror.Append(result, describe(fe))
		}
	}

	named := 0
	for _, name := range s.Categories {
		if strings.TrimSpace(name) == "" {
			continue
		}
		named++
		if _, err := charset.ParseCategory(name); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if len(s.Categories) > 0 && named == 0 {
		result = multierror.Append(result, errBlankCategories)
	}

	if result == nil {
		return nil
	}
	result.ErrorFormat = func(errs []error) string {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return "invalid settings: " + strings.Join(msgs, "; ")
	}
	return result
}

func describe(fe validator.FieldError) error {
	switch fe.Tag() {
	case "min":
		return fmt.Errorf("%s must be at least %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	case "max":
		return fmt.Errorf("%s must be at most %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	case "oneof":
		return fmt.Errorf("%s must be one of %s (got %q)", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	default:
		return fmt.Errorf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
