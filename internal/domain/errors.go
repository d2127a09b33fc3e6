package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateEmail     = errors.New("email already registered")

	// Tax engine errors.
	ErrScheduleNotFound      = errors.New("no slab schedule configured for the requested regime and financial year")
	ErrInvalidTaxInput       = errors.New("invalid tax input")
	ErrInvalidSchedule       = errors.New("slab schedule configuration is invalid")
	ErrSkewToleranceExceeded = errors.New("component drift exceeds reconciliation tolerance")

	// Document manager errors.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrInvalidCategory     = errors.New("unrecognized document category")
	ErrUploadFailed        = errors.New("file upload to storage failed")

	// Regulatory updates errors.
	ErrUpdateNotFound         = errors.New("regulatory update not found")
	ErrUpdateAlreadyPublished = errors.New("regulatory update is already published")

	// Chat errors.
	ErrSessionNotFound = errors.New("chat session not found")
)
