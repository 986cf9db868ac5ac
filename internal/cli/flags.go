package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// enumValue is a pflag.Value restricted to a fixed set of strings. An
// empty value is accepted and means "not set".
type enumValue struct {
	target  *string
	allowed []string
}

func newEnumValue(target *string, allowed ...string) pflag.Value {
	return &enumValue{target: target, allowed: allowed}
}

func (e *enumValue) String() string { return *e.target }

func (e *enumValue) Set(v string) error {
	if v == "" {
		*e.target = ""
		return nil
	}
	for _, a := range e.allowed {
		if strings.EqualFold(v, a) {
			*e.target = a
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s", strings.Join(e.allowed, ", "))
}

func (e *enumValue) Type() string { return "string" }
