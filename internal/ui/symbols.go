package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Check passed
	SymbolFail     = "✗" // Check failed
	SymbolPending  = "○" // Nothing to report
	SymbolComplete = "●" // Value present, colored by severity
)
