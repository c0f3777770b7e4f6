package badger

import (
	"fmt"
	"strings"

	badgerdb "github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"
)

// badgerLoggerAdapter routes badger's internal logging into zap
type badgerLoggerAdapter struct {
	logger *zap.Logger
}

// Ensure badgerLoggerAdapter implements badger.Logger
var _ badgerdb.Logger = (*badgerLoggerAdapter)(nil)

func (b *badgerLoggerAdapter) Errorf(format string, args ...interface{}) {
	b.logger.Error(badgerMessage(format, args...), zap.String("component", "badger"))
}

func (b *badgerLoggerAdapter) Warningf(format string, args ...interface{}) {
	b.logger.Warn(badgerMessage(format, args...), zap.String("component", "badger"))
}

// Infof is demoted to debug; badger is chatty at info level
func (b *badgerLoggerAdapter) Infof(format string, args ...interface{}) {
	b.logger.Debug(badgerMessage(format, args...), zap.String("component", "badger"))
}

func (b *badgerLoggerAdapter) Debugf(format string, args ...interface{}) {
	b.logger.Debug(badgerMessage(format, args...), zap.String("component", "badger"))
}

func badgerMessage(format string, args ...interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
