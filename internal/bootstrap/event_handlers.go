package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/ZetaFarm_Go/internal/event"
	"github.com/osse101/ZetaFarm_Go/internal/eventlog"
	"github.com/osse101/ZetaFarm_Go/internal/metrics"
)

// RegisterEventHandlers subscribes the metrics collector and the activity
// log to every game event on bus
func RegisterEventHandlers(bus event.Bus, eventLog eventlog.Service) error {
	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if err := eventLog.Subscribe(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
	}
	slog.Info(LogMsgEventLoggerInitialized)

	return nil
}
