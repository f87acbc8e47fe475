package app

import "github.com/srworkflow/workflow/internal/apperr"

var (
	errUnknownFormat = &apperr.Error{
		Message: "unknown export format %q: use csv or pdf",
	}

	errExportFailed = &apperr.Error{
		Message: "writing the report failed",
	}

	errReadPassword = &apperr.Error{
		Message: "unable to read password",
	}

	errPasswordMismatch = &apperr.Error{
		Message: "passwords do not match",
	}
)
