package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Operation completed successfully
	SymbolFail     = "✗" // Operation failed
	SymbolPending  = "○" // Not yet started / stopped
	SymbolProgress = "◐" // In progress / starting
	SymbolStopping = "◑" // Shutting down
	SymbolActive   = "●" // Running
	SymbolReload   = "↻" // Reloading
	SymbolUnknown  = "?" // State could not be determined
)
