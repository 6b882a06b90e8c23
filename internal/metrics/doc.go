// Package metrics collects request and task statistics for the task runner.
//
// Handlers emit events on a buffered channel; a single collector goroutine
// applies them to the in-memory Metrics:
//   - request counts per route
//   - how often each task kind was dispatched
//   - response times with percentile calculations (P50, P95, P99)
//   - HTTP status code distribution per route
//
// Emit never blocks: when the buffer is full the event is dropped.
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger)
//	collector.Start(ctx)
//
//	collector.Emit(metrics.MetricEvent{
//		Type:       metrics.EventResponseCompleted,
//		Route:      "/run",
//		Duration:   150 * time.Millisecond,
//		StatusCode: 200,
//	})
//
//	snapshot := collector.Snapshot()
//
// On context cancellation the collector drains pending events before exiting.
package metrics
