package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part is one row of the part master: on-hand availability plus the
// labor standard used to derive order hours. Parts referenced by demand
// but absent from the master are represented with zero available and
// zero hours so they block release instead of erroring.
type Part struct {
	ID           string
	Available    decimal.Decimal
	HoursPerUnit decimal.Decimal
}

// IncomingSupply is one confirmed purchase order line for a part.
// It only adds to ledger availability when the caller opts into
// incoming supply; otherwise it is used for shortage resolution hints.
type IncomingSupply struct {
	PONumber     string
	PartID       string
	QtyDue       decimal.Decimal
	PromisedDate *time.Time
}

// DueWithin reports whether the supply is promised on or before the
// trust horizon. Lines without a promised date are never trusted.
func (s IncomingSupply) DueWithin(now time.Time, trustDays int) bool {
	if s.PromisedDate == nil {
		return false
	}
	horizon := now.AddDate(0, 0, trustDays)
	return !s.PromisedDate.After(horizon)
}
