package config

import "github.com/srworkflow/workflow/internal/apperr"

var (
	errInitPaths = &apperr.Error{
		Message: "unable to resolve config and data paths",
	}

	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errNegativeRate = &apperr.Error{
		Message: "hourly rate must not be negative, got %v",
	}

	errInvalidConversion = &apperr.Error{
		Message: "conversion rate must be greater than zero, got %v",
	}

	errInvalidTick = &apperr.Error{
		Message: "tick interval must be between %v and %v, got %v",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown storage driver %q (must be bolt or sqlite)",
	}

	errInvalidDate = &apperr.Error{
		Message: "unable to understand the date %q",
	}

	errInvalidAmount = &apperr.Error{
		Message: "%s must be a non-negative number, got %q",
	}

	errInvalidRange = &apperr.Error{
		Message: "the start date (%s) must not be after the end date (%s)",
	}
)
