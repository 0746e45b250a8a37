package logging

import (
	"io"
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Diagnostics go to stderr so they never mix
// with the tables printed on stdout. Verbose mode logs at debug level,
// otherwise only warnings and above are shown.
func New(verbose bool) (*zap.Logger, func()) {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter is New with an explicit destination
func NewWithWriter(w io.Writer, verbose bool) (*zap.Logger, func()) {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	zapConfig := zap.NewDevelopmentEncoderConfig()
	zapConfig.TimeKey = "ts"
	zapConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.LevelKey = "lvl"
	zapConfig.NameKey = "name"
	zapConfig.MessageKey = "msg"
	zapConfig.CallerKey = "caller"
	zapConfig.StacktraceKey = "stacktrace"

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(zapConfig), zapcore.AddSync(w), level)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.FatalLevel))

	flusher := func() {
		if err := logger.Sync(); err != nil && verbose {
			log.Println("error during flushing any buffered log entries:", err)
		}
	}

	return logger, flusher
}
