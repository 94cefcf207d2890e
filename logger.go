package carplan

import (
	"log"
	"os"
)

// Logger is anything capable to print formatted diagnostics. *log.Logger satisfies it
type Logger interface {
	Printf(format string, v ...interface{})
}

func defaultLogger() Logger {
	return log.New(os.Stderr, "carplan: ", log.LstdFlags)
}

type silentLogger struct{}

func (silentLogger) Printf(string, ...interface{}) {}

// SilentLogger drops every message
var SilentLogger Logger = silentLogger{}
