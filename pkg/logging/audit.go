package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/pedigreecheck/pkg/constants"
	"github.com/agentstation/pedigreecheck/pkg/errors"
	"github.com/agentstation/pedigreecheck/pkg/matcher"
)

// AuditFileName returns the audit log file name for a run started at t.
func AuditFileName(t time.Time) string {
	return constants.AuditLogPrefix + t.Format(constants.AuditLogTimeLayout) + constants.AuditLogExt
}

// AuditLogger writes every emitted outcome as one "timestamp [LEVEL] - message"
// line. It implements report.Sink. Emit is not safe for concurrent use.
type AuditLogger struct {
	logger zerolog.Logger
	closer io.Closer
	path   string
}

// NewAudit returns an audit logger writing to w.
func NewAudit(w io.Writer) *AuditLogger {
	return &AuditLogger{logger: zerolog.New(auditWriter(w)).Level(zerolog.InfoLevel).With().Timestamp().Logger()}
}

// OpenAudit creates dir if needed and opens a fresh audit log file in it,
// named after start.
func OpenAudit(dir string, start time.Time) (*AuditLogger, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}
	path := filepath.Join(dir, AuditFileName(start))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	a := NewAudit(f)
	a.closer = f
	a.path = path
	return a, nil
}

// Path returns the file the logger writes to, or "" when it wraps a writer.
func (a *AuditLogger) Path() string { return a.path }

// Emit logs o at INFO or WARNING according to its severity.
func (a *AuditLogger) Emit(o matcher.Outcome) {
	if o.Severity == matcher.SeverityWarning {
		a.logger.Warn().Msg(o.Message)
		return
	}
	a.logger.Info().Msg(o.Message)
}

// Close closes the underlying file, if any.
func (a *AuditLogger) Close() error {
	if a.closer == nil {
		return nil
	}
	return errors.WrapIO("close", a.path, a.closer.Close())
}

func auditWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: constants.AuditLineTimeLayout,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.MessageFieldName,
		},
		FormatLevel: func(i any) string {
			level, _ := i.(string)
			switch level {
			case zerolog.LevelWarnValue:
				level = "WARNING"
			default:
				level = strings.ToUpper(level)
			}
			return fmt.Sprintf("[%s]", level)
		},
		FormatMessage: func(i any) string {
			return fmt.Sprintf("- %v", i)
		},
	}
}
