// Package zapjournal is a zapcore.Core that writes to the systemd journal.
package zapjournal

import (
	"fmt"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
	"go.uber.org/zap/zapcore"
)

// Available reports whether stderr is connected to the journal, which is
// the case when running from a systemd unit.
func Available() bool {
	if !journal.Enabled() {
		return false
	}

	ok, err := journal.StderrIsJournalStream()
	return err == nil && ok
}

type sendFunc func(message string, priority journal.Priority, vars map[string]string) error

type core struct {
	zapcore.LevelEnabler
	fields map[string]string
	send   sendFunc
}

func NewCore(enab zapcore.LevelEnabler) zapcore.Core {
	return &core{
		LevelEnabler: enab,
		fields:       map[string]string{},
		send:         journal.Send,
	}
}

func (c *core) With(fields []zapcore.Field) zapcore.Core {
	clone := &core{
		LevelEnabler: c.LevelEnabler,
		fields:       make(map[string]string, len(c.fields)+len(fields)),
		send:         c.send,
	}
	for k, v := range c.fields {
		clone.fields[k] = v
	}
	addFields(clone.fields, fields)

	return clone
}

func (c *core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	vars := make(map[string]string, len(c.fields)+len(fields)+1)
	for k, v := range c.fields {
		vars[k] = v
	}
	addFields(vars, fields)
	if ent.LoggerName != "" {
		vars["SYSLOG_IDENTIFIER"] = ent.LoggerName
	}

	return c.send(ent.Message, priority(ent.Level), vars)
}

func (c *core) Sync() error {
	return nil
}

func priority(level zapcore.Level) journal.Priority {
	switch level {
	case zapcore.DebugLevel:
		return journal.PriDebug
	case zapcore.InfoLevel:
		return journal.PriInfo
	case zapcore.WarnLevel:
		return journal.PriWarning
	case zapcore.ErrorLevel:
		return journal.PriErr
	case zapcore.DPanicLevel, zapcore.PanicLevel:
		return journal.PriCrit
	case zapcore.FatalLevel:
		return journal.PriEmerg
	}

	return journal.PriNotice
}

func addFields(dst map[string]string, fields []zapcore.Field) {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}

	for k, v := range enc.Fields {
		dst[fieldName(k)] = fmt.Sprint(v)
	}
}

// fieldName converts a zap key into a valid journal field name: upper case
// letters, digits and underscores, not starting with an underscore.
func fieldName(key string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, key)

	return strings.TrimLeft(name, "_")
}
