// Package notify delivers stock alerts to the dashboard push channel.
// Dispatch is fire-and-forget: callers never wait on or fail because of it.
package notify

import "log/slog"

type Notifier interface {
	NotifyLowStock(productName string)
	NotifyEmptyStock(productName string)
}

// LogNotifier writes alerts to the structured log. It stands in for the push
// delivery backend in environments without one configured.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}

	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyLowStock(productName string) {
	n.log.Warn("stock warning", "product", productName, "alert", "low_stock")
}

func (n *LogNotifier) NotifyEmptyStock(productName string) {
	n.log.Warn("stock warning", "product", productName, "alert", "empty_stock")
}
