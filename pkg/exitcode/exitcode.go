// Package exitcode provides standardized exit codes for mvnneat
package exitcode

// Exit codes for mvnneat CLI
const (
	Success           = 0
	GeneralError      = 1
	ConfigError       = 2
	ValidationError   = 3
	FileSystemError   = 4
	PolicyError       = 5
	PermissionError   = 6
	TemplateError     = 7
	UnsupportedFormat = 8
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case ValidationError:
		return "Validation error"
	case FileSystemError:
		return "File system error"
	case PolicyError:
		return "Policy error"
	case PermissionError:
		return "Permission error"
	case TemplateError:
		return "Template error"
	case UnsupportedFormat:
		return "Unsupported format"
	default:
		return "Unknown error"
	}
}
