package solver

import "go.uber.org/zap"

// CallEvent records metadata about a single solver invocation.
type CallEvent struct {
	Doctors   int
	Days      int
	LatencyMs int64
	Success   bool
	Feasible  bool
	ErrorCode string
}

// Observer receives events about solver calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// ZapObserver writes solver call events to a zap logger.
type ZapObserver struct {
	log *zap.Logger
}

// NewZapObserver creates an Observer that logs events to log.
func NewZapObserver(log *zap.Logger) *ZapObserver {
	return &ZapObserver{log: log.Named("solver")}
}

func (o *ZapObserver) OnCallComplete(event CallEvent) {
	fields := []zap.Field{
		zap.Int("doctors", event.Doctors),
		zap.Int("days", event.Days),
		zap.Int64("latency_ms", event.LatencyMs),
	}
	if !event.Success {
		o.log.Warn("solver_call", append(fields, zap.String("error_code", event.ErrorCode))...)
		return
	}
	o.log.Info("solver_call", append(fields, zap.Bool("feasible", event.Feasible))...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
