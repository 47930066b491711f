package app

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides structured logging for patch application.
type Logger struct {
	zap *zap.Logger
}

// NewLogger creates a Logger that appends JSON records to a file. If
// logPath is empty, logging is disabled. Development mode uses the
// readable encoder config.
func NewLogger(logPath string, development bool) (*Logger, error) {
	if logPath == "" {
		return &Logger{zap: zap.NewNop()}, nil
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	var encoderConfig zapcore.EncoderConfig
	if development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		zapcore.InfoLevel,
	)

	return &Logger{zap: zap.New(core)}, nil
}

// Close syncs the logger; call on shutdown.
func (l *Logger) Close() error {
	return l.zap.Sync()
}

// PatchParsed logs the shape of a successfully parsed patch.
func (l *Logger) PatchParsed(files, hunks int) {
	l.zap.Info("patch parsed",
		zap.Int("files", files),
		zap.Int("hunks", hunks),
	)
}

// HunkMatched logs where a hunk was located and how confidently.
func (l *Logger) HunkMatched(file string, hunkIndex, startIndex, matchedLength int, score float64, candidates int) {
	l.zap.Info("hunk matched",
		zap.String("file", file),
		zap.Int("hunk", hunkIndex+1),
		zap.Int("start_line", startIndex+1),
		zap.Int("matched_length", matchedLength),
		zap.Float64("score", score),
		zap.Int("candidates", candidates),
	)
}

// FileApplied logs the completion of one file diff.
func (l *Logger) FileApplied(file string, hunks int, dryRun bool) {
	l.zap.Info("file applied",
		zap.String("file", file),
		zap.Int("hunks", hunks),
		zap.Bool("dry_run", dryRun),
	)
}

// Error logs an error.
func (l *Logger) Error(msg string, err error) {
	l.zap.Error(msg, zap.Error(err))
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}
