package main

// Default limits for CLI commands.
const (
	DefaultRunsLimit = 20
)

// formatAuto lets the parser be chosen from the file extension.
const formatAuto = "auto"
