package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "server.timeout_seconds")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values. It returns nil when
// the configuration is usable.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Server.Endpoint == "" {
		errs = append(errs, ValidationError{
			Field: "server.endpoint", Value: c.Server.Endpoint,
			Message: "an endpoint URL is required",
		})
	} else if u, err := url.Parse(c.Server.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field: "server.endpoint", Value: c.Server.Endpoint,
			Message: "must be an absolute URL like http://localhost:3000",
		})
	}
	if c.Server.TimeoutSeconds <= 0 {
		errs = append(errs, ValidationError{
			Field: "server.timeout_seconds", Value: c.Server.TimeoutSeconds,
			Message: "must be positive",
		})
	}
	if c.Reminder.IntervalSeconds <= 0 {
		errs = append(errs, ValidationError{
			Field: "reminder.interval_seconds", Value: c.Reminder.IntervalSeconds,
			Message: "must be positive",
		})
	}
	if c.Reminder.LeadMinutes < 0 {
		errs = append(errs, ValidationError{
			Field: "reminder.lead_minutes", Value: c.Reminder.LeadMinutes,
			Message: "cannot be negative",
		})
	}
	if !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errs = append(errs, ValidationError{
			Field: "logging.level", Value: c.Logging.Level,
			Message: fmt.Sprintf("must be one of %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
