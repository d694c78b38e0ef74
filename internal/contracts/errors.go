package contracts

import "errors"

// Error taxonomy for a diagnostic run. Price-layer failures abort the
// run; flow and news failures degrade fields instead.
var (
	// ErrNotFound means no venue yielded price data. Terminal for the run.
	ErrNotFound = errors.New("symbol not listed on any venue")

	// ErrProvider is a transport or parse failure from the price
	// provider. Terminal for price-dependent parts.
	ErrProvider = errors.New("provider error")

	// ErrUnavailable means the flow or news provider is degraded
	// (missing credential, transport failure). Never aborts a run.
	ErrUnavailable = errors.New("data unavailable")

	// ErrInsufficientHistory means fewer bars than a moving-average
	// window requires. Terminal only for the specific indicator.
	ErrInsufficientHistory = errors.New("insufficient price history")
)
