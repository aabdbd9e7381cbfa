package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateInput()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateRanking()...)
	errors = append(errors, c.validateThresholds()...)
	errors = append(errors, c.validateVerification()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateInput() ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(c.Input.Path) == "" {
		errors = append(errors, ValidationError{
			Field:   "input.path",
			Message: "path is required",
		})
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(c.Output.CSV) == "" {
		errors = append(errors, ValidationError{
			Field:   "output.csv",
			Message: "csv file name is required",
		})
	}

	if strings.TrimSpace(c.Output.JSON) == "" {
		errors = append(errors, ValidationError{
			Field:   "output.json",
			Message: "json file name is required",
		})
	}

	if c.Output.CSV != "" && c.Output.JSON != "" {
		csvPath, jsonPath := c.OutputPaths()
		if csvPath == jsonPath {
			errors = append(errors, ValidationError{
				Field:   "output.json",
				Message: "json artifact must not overwrite the csv artifact",
			})
		}
	}

	return errors
}

func (c *Config) validateRanking() ValidationErrors {
	var errors ValidationErrors

	if c.Ranking.TopN < 1 {
		errors = append(errors, ValidationError{
			Field:   "ranking.top_n",
			Message: "top_n must be at least 1",
		})
	}

	return errors
}

func (c *Config) validateThresholds() ValidationErrors {
	var errors ValidationErrors

	if c.Validation.MinDrivers < 1 {
		errors = append(errors, ValidationError{
			Field:   "validation.min_drivers",
			Message: "min_drivers must be at least 1",
		})
	}

	if c.Validation.MinLapsPerDriver < 1 {
		errors = append(errors, ValidationError{
			Field:   "validation.min_laps_per_driver",
			Message: "min_laps_per_driver must be at least 1",
		})
	}

	return errors
}

func (c *Config) validateVerification() ValidationErrors {
	var errors ValidationErrors

	validMethods := map[string]bool{"roundtrip": true, "count": true, "skip": true, "": true}
	if !validMethods[c.Verification.Method] {
		errors = append(errors, ValidationError{
			Field:   "verification.method",
			Message: "method must be 'roundtrip', 'count', or 'skip'",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
