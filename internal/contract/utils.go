package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Accuracy label constants.
const (
	StrongValue  = "Strong"  // Strong value
	FairValue    = "Fair"    // Fair value
	WeakValue    = "Weak"    // Weak value
	UnknownValue = "Unknown" // No evaluation available
)

// Color variables for console output.
var (
	StrongColor    = color.New(color.FgGreen, color.Bold) // StrongColor marks a model that is ready to use.
	FairColor      = color.New(color.FgYellow)            // FairColor marks a model worth a second look.
	WeakColor      = color.New(color.FgRed, color.Bold)   // WeakColor marks a model that barely beats chance.
	GeneratedColor = color.New(color.FgCyan)              // GeneratedColor highlights generated insights.
	TemplateColor  = color.New(color.FgMagenta)           // TemplateColor highlights template insights.
)

// GetPlainLabel returns a plain text label for a held-out accuracy in [0, 1].
func GetPlainLabel(accuracy float64) string {
	switch {
	case accuracy < 0 || accuracy > 1:
		return UnknownValue
	case accuracy >= 0.8:
		return StrongValue
	case accuracy >= 0.65:
		return FairValue
	default:
		return WeakValue
	}
}

// GetColorLabel returns a colored accuracy label for console output.
func GetColorLabel(accuracy float64) string {
	text := GetPlainLabel(accuracy)

	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case FairValue:
		return FairColor.Sprint(text)
	case WeakValue:
		return WeakColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// RedactDatabaseURL hides the password of a connection URL for display.
func RedactDatabaseURL(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		if at := strings.Index(raw, "@tcp("); at > 0 {
			if colon := strings.Index(raw[:at], ":"); colon >= 0 {
				return raw[:colon+1] + "****" + raw[at:]
			}
		}
		return raw
	}
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return raw
	}
	userInfo := rest[:at]
	if colon := strings.Index(userInfo, ":"); colon >= 0 {
		userInfo = userInfo[:colon+1] + "****"
	}
	return scheme + "://" + userInfo + rest[at:]
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
