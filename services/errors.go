package services

import "errors"

// Ошибки сервиса турниров, используемые в маппинге HTTP.
var (
	ErrTournamentNotFound = errors.New("tournament not found")

	// Ошибки валидации
	ErrValidationFailed    = errors.New("validation failed")
	ErrDuplicatePlayerName = errors.New("player names must be unique")

	// Нарушения порядка фаз
	ErrInvalidPhase         = errors.New("operation not allowed in the current tournament phase")
	ErrGroupsAlreadyDrawn   = errors.New("groups have already been drawn")
	ErrGroupsNotDrawn       = errors.New("groups have not been drawn yet")
	ErrGroupStageIncomplete = errors.New("not every group match has been played")

	ErrExportUnavailable = errors.New("object storage is not configured")
)
