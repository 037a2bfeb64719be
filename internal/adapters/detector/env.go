// Package detector inspects the environment to choose how output is presented.
package detector

import (
	"os"

	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode selects how build progress is shown.
type OutputMode int

const (
	// ModeAuto detects the mode from the environment.
	ModeAuto OutputMode = iota
	// ModeInteractive shows phase status lines and replays build output only when the build fails.
	ModeInteractive
	// ModeLinear streams every build output line with a phase prefix.
	ModeLinear
)

// LogFormat selects the log handler.
type LogFormat int

const (
	// FormatPretty writes colored, human-readable log lines.
	FormatPretty LogFormat = iota
	// FormatJSON writes one JSON object per log record.
	FormatJSON
)

// ErrUnknownFlagValue is returned when an output or log format flag has an unsupported value.
var ErrUnknownFlagValue = zerr.New("unknown flag value")

// DetectEnvironment returns the output mode recommended for the current process.
// Interactive output needs stderr to be a terminal outside of CI.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stderr.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) OutputMode {
	isCI := ci == "true" || ci == "1"
	if !isTTY || isCI {
		return ModeLinear
	}
	return ModeInteractive
}

// ResolveMode applies the --output flag to the detected mode.
// flag is one of "auto", "interactive", "linear", "ci" or empty.
func ResolveMode(autoDetected OutputMode, flag string) (OutputMode, error) {
	switch flag {
	case "interactive":
		return ModeInteractive, nil
	case "linear", "ci":
		return ModeLinear, nil
	case "auto", "":
		return autoDetected, nil
	default:
		return ModeAuto, zerr.With(zerr.Wrap(ErrUnknownFlagValue, "expected auto, interactive or linear"),
			"output", flag)
	}
}

// ResolveLogFormat parses the --log-format flag. The empty string selects pretty output.
func ResolveLogFormat(flag string) (LogFormat, error) {
	switch flag {
	case "pretty", "auto", "":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatPretty, zerr.With(zerr.Wrap(ErrUnknownFlagValue, "expected pretty or json"),
			"log_format", flag)
	}
}
