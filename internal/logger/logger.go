package logger

import (
	"fmt"
	"os"

	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Define colorized printing functions for different log levels using fatih/color.
// These are package-level variables holding functions that behave like fmt.Printf,
// but with text colored appropriately for the log level.
//
// Every line printed through them is additionally duplicated, uncolored, into the
// log file opened by Init, so a completed (or aborted) run leaves a full transcript
// on disk for the operator.

// logFile is the open transcript file, nil until Init succeeds in opening it.
var logFile *os.File

// Info logs informational messages in green color.
// Green is typically used for success or normal info to catch user attention pleasantly.
var Info = level(color.New(color.FgGreen))

// Warn logs warning messages in bright magenta color.
// Magenta is bright and stands out, signaling caution without being too alarming.
var Warn = level(color.New(color.FgHiMagenta))

// Error logs error messages in red color.
// Red is commonly associated with errors or critical problems to draw immediate attention.
var Error = level(color.New(color.FgRed))

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// This is a function variable that is assigned dynamically during Init based on debug flag.
// It starts as a no-op so code paths exercised before Init (or from tests) stay safe.
var Debug = func(format string, a ...any) {}

// level builds a printf-style function that writes colored output to the terminal
// and the same text, plain, to the log file.
func level(c *color.Color) func(format string, a ...any) {
	printf := c.PrintfFunc()
	return func(format string, a ...any) {
		printf(format, a...)
		if logFile != nil {
			fmt.Fprintf(logFile, format, a...)
		}
	}
}

// Init initializes the logger package: it enables or disables debug logging and opens
// the transcript file at logPath (appending, so repeated runs accumulate history).
// Parameters:
//   - enableDebug: boolean flag to turn debug messages on or off.
//   - logPath: path of the transcript file; an empty path disables the file copy.
//
// Failure to open the log file is not fatal: the tool still works terminal-only,
// and the failure itself is reported on stderr.
func Init(enableDebug bool, logPath string) {
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open log file %s: %v\n", logPath, err)
		} else {
			logFile = f
		}
	}

	if enableDebug {
		// Assign Debug to print cyan-colored debug messages.
		Debug = level(color.New(color.FgCyan))
	} else {
		// Assign Debug to a no-op function that ignores all debug logs to avoid runtime overhead.
		Debug = func(format string, a ...any) {}
	}
}

// Close flushes and closes the transcript file, if one was opened.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
