package payroll

import "errors"

var (
	ErrInvalidPeriod     = errors.New("invalid pay period")
	ErrInvalidEmployee   = errors.New("invalid employee for payroll")
	ErrStatementNotFound = errors.New("pay statement not found")
)
