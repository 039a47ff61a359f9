package sqlite

import "github.com/charmbracelet/log"

// migrateLogger adapts a charmbracelet logger to migrate.Logger.
type migrateLogger struct{ l *log.Logger }

func (m migrateLogger) Printf(format string, v ...any) { m.l.Debugf("migrate: "+format, v...) }
func (m migrateLogger) Verbose() bool                  { return false }
