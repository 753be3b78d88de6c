package gen

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Config holds the parameters of one generation request.
type Config struct {
	Count        int     `toml:"count" json:"count" validate:"min=1"`
	IntMin       int64   `toml:"int_min" json:"int_min"`
	IntMax       int64   `toml:"int_max" json:"int_max" validate:"gtefield=IntMin"`
	FloatMin     float64 `toml:"float_min" json:"float_min" validate:"finite"`
	FloatMax     float64 `toml:"float_max" json:"float_max" validate:"finite,gtefield=FloatMin"`
	StringLength int     `toml:"string_length" json:"string_length" validate:"min=1"`
}

// DefaultConfig: 10 cases, int [-100, 100], float [-10, 10], strings of length 10.
func DefaultConfig() Config {
	return Config{
		Count:        10,
		IntMin:       -100,
		IntMax:       100,
		FloatMin:     -10.0,
		FloatMax:     10.0,
		StringLength: 10,
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// #nosec G104 -- static name and func, cannot fail
		_ = validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			f := fl.Field().Float()
			return !math.IsNaN(f) && !math.IsInf(f, 0)
		})
	})
	return validate
}

var fieldNames = map[string]string{
	"Count":        "count",
	"IntMin":       "int_min",
	"IntMax":       "int_max",
	"FloatMin":     "float_min",
	"FloatMax":     "float_max",
	"StringLength": "string_length",
}

// Validate checks the config constraints. The generator does not call it.
func (c Config) Validate() error {
	err := configValidator().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation failed: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("invalid generation config: %s", strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	name := fieldNames[fe.StructField()]
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s (got %v)", name, fe.Param(), fe.Value())
	case "gtefield":
		return fmt.Sprintf("%s must be >= %s (got %v)", name, fieldNames[fe.Param()], fe.Value())
	case "finite":
		return fmt.Sprintf("%s must be a finite number (got %v)", name, fe.Value())
	}
	return fmt.Sprintf("%s failed %q check", name, fe.Tag())
}
