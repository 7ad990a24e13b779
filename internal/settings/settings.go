// Package settings validates the player-supplied game settings before a
// session is started. Nothing is built from a form that fails here.
package settings

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/robalobadob/pairs/internal/deck"
)

const (
	MinColumns = 2
	MaxColumns = 13
)

// MaxRanks is the fixed set of rank ceilings offered by the settings form.
var MaxRanks = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}

// ErrInvalidConfig is the single error class of session start.
var ErrInvalidConfig = errors.New("invalid configuration")

// Form is what the settings form submits. Columns arrives as free text.
type Form struct {
	Columns        string  `json:"columns" validate:"required,number"`
	MaxRank        int     `json:"maxRank" validate:"maxrank"`
	ColorSensitive bool    `json:"colorSensitive"`
	Seed           *uint64 `json:"seed,omitempty"`
}

// Config is a validated session configuration.
type Config struct {
	Columns        int `validate:"min=2,max=13"`
	MaxRank        int `validate:"min=1,max=13"`
	ColorSensitive bool
	Seed           *uint64
}

// NumCards is the deck size for this configuration.
func (c Config) NumCards() int { return deck.Size(c.MaxRank) }

// Rows is the number of board rows.
func (c Config) Rows() int { return deck.Rows(c.NumCards(), c.Columns) }

// ConfigError carries the user-facing message for a rejected form.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(f.Name[:1]) + f.Name[1:]
		}
		return name
	})
	// rank ceilings come from MaxRanks only
	_ = v.RegisterValidation("maxrank", func(fl validator.FieldLevel) bool {
		return slices.Contains(MaxRanks, int(fl.Field().Int()))
	})
	return v
}

// Parse validates f and converts it into a Config.
func Parse(f Form) (Config, error) {
	f.Columns = strings.TrimSpace(f.Columns)
	if err := validate.Struct(f); err != nil {
		return Config{}, toConfigError(err)
	}

	cols, err := strconv.Atoi(f.Columns)
	if err != nil {
		return Config{}, columnsRange()
	}
	cfg := Config{
		Columns:        cols,
		MaxRank:        f.MaxRank,
		ColorSensitive: f.ColorSensitive,
		Seed:           f.Seed,
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, toConfigError(err)
	}
	return cfg, nil
}

func toConfigError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	fe := ves[0]
	switch fe.Field() {
	case "columns", "Columns":
		if fe.Tag() == "min" || fe.Tag() == "max" {
			return columnsRange()
		}
		return &ConfigError{Field: "columns", Message: "columns must be a number"}
	case "maxRank", "MaxRank":
		return &ConfigError{Field: "maxRank", Message: fmt.Sprintf("maxRank must be one of %v", MaxRanks)}
	}
	return &ConfigError{Field: fe.Field(), Message: fe.Error()}
}

func columnsRange() error {
	return &ConfigError{
		Field:   "columns",
		Message: fmt.Sprintf("columns must be between %d and %d", MinColumns, MaxColumns),
	}
}
