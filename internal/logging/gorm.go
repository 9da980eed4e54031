package logging

import (
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// printfWriter adapts the global logger to gorm's logger.Writer.
type printfWriter struct{}

func (printfWriter) Printf(format string, args ...interface{}) {
	l := Logger()
	l.Debug().Str("component", "gorm").Msgf(format, args...)
}

// GormLogger returns a gorm logger that writes SQL traces through zerolog.
func GormLogger(level gormlogger.LogLevel) gormlogger.Interface {
	return gormlogger.New(printfWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
