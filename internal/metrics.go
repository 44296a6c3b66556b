package internal

import (
	"time"

	"go.uber.org/zap"
)

type Metric struct {
	Op         string
	Subject    string
	StartTime  time.Time
	FinishTime time.Time
}

func storeMetric(metric *Metric, ctx *Context) {
	ctx.Log.Info(
		"operation metric",
		zap.String("op", metric.Op),
		zap.String("subject", metric.Subject),
		zap.Time("start_time", metric.StartTime),
		zap.Duration("duration", metric.FinishTime.Sub(metric.StartTime)),
	)
}
