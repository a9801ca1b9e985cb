package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateProviderKey, Config{})
	return v
}

// validateProviderKey requires an API key when the live provider runs without demo fallback.
func validateProviderKey(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)
	if cfg.Provider == ProviderCricketdata && !cfg.DemoMode && strings.TrimSpace(cfg.Cricketdata.APIKey) == "" {
		sl.ReportError(cfg.Cricketdata.APIKey, "Cricketdata.APIKey", "APIKey", "required_without_demo", "")
	}
}

// Validate reports every invalid static setting. Boot aborts when it returns an error.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("config: invalid settings: %s", strings.Join(msgs, "; "))
}
