package models

import "errors"

// Cross-field validation errors surfaced to handlers as 400 responses
var (
	ErrDefendantRequiresCaseNumber   = errors.New("a defendant case requires a case number")
	ErrAppealRequiresPrimaryNumber   = errors.New("an appeal case requires the primary case number")
	ErrComprehensiveRequiresExpenses = errors.New("comprehensive fees require the case expenses")
)
