package obs

import (
	"time"

	"go.uber.org/zap"
)

// Time logs the duration of an operation when the returned func runs,
// attaching the error the operation finished with, if any.
//
// Usage: defer obs.Time(log, "routing.ComputeRoute")(&err)
func Time(log *zap.Logger, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		fields := []zap.Field{
			zap.String("op", name),
			zap.Duration("dur", time.Since(start)),
		}

		if errp != nil && *errp != nil {
			log.Warn("operation failed", append(fields, zap.Error(*errp))...)
			return
		}
		log.Debug("operation finished", fields...)
	}
}
