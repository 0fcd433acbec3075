package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// EnvLogLevel selects debug logging when set to "debug".
const EnvLogLevel = "IMAGE_SEGMENT_LOG_LEVEL"

// Setup configures the global logger to write to w with date, time and
// source location. stdout is reserved for program output.
func Setup(w io.Writer) {
	log.SetOutput(w)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}

// Init sets up the global logger to append to the file at logFilePath.
// It returns the log file, which the caller is responsible for closing.
func Init(logFilePath string) (*os.File, error) {
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	Setup(logFile)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	return logFile, nil
}

// DebugEnabled reports whether debug logging was requested through the
// environment.
func DebugEnabled() bool {
	return strings.EqualFold(os.Getenv(EnvLogLevel), "debug")
}
