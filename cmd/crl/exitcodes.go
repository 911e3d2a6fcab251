package main

const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid values)
	ExitDataError   = 3 // Data error (not found, malformed input)
	ExitUnavailable = 4 // Backend unavailable (Ollama down, empty embedding store)
	ExitQuota       = 5 // Usage quota exceeded
)
