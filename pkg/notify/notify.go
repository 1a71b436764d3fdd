// Package notify is the error-reporting collaborator used for non-fatal UI
// errors such as unknown widget fill types. Reporting is fire-and-forget:
// implementations must not block the caller and return nothing.
package notify

import (
	"strconv"
	"sync"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// Reporter receives non-fatal errors. userFacing marks messages that should
// reach the operator rather than only the logs.
type Reporter interface {
	NotifyError(message, detail string, userFacing bool)
}

// ReporterFunc adapts a function into a Reporter.
type ReporterFunc func(message, detail string, userFacing bool)

// NotifyError calls f.
func (f ReporterFunc) NotifyError(message, detail string, userFacing bool) {
	if f == nil {
		return
	}
	f(message, detail, userFacing)
}

// Nop returns a Reporter that discards every notification.
func Nop() Reporter {
	return ReporterFunc(func(string, string, bool) {})
}

// Multi fans notifications out to every non-nil reporter in order.
func Multi(reporters ...Reporter) Reporter {
	filtered := make([]Reporter, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			filtered = append(filtered, r)
		}
	}
	return ReporterFunc(func(message, detail string, userFacing bool) {
		for _, r := range filtered {
			r.NotifyError(message, detail, userFacing)
		}
	})
}

type zapReporter struct {
	logger *zap.Logger
}

// NewZapReporter logs notifications. User-facing errors are logged at Error,
// the rest at Warn.
func NewZapReporter(logger *zap.Logger) Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &zapReporter{logger: logger}
}

func (r *zapReporter) NotifyError(message, detail string, userFacing bool) {
	fields := []zap.Field{zap.Bool("user_facing", userFacing)}
	if detail != "" {
		fields = append(fields, zap.String("detail", detail))
	}
	if userFacing {
		r.logger.Error(message, fields...)
		return
	}
	r.logger.Warn(message, fields...)
}

type sentryReporter struct {
	mu  sync.Mutex
	hub *sentry.Hub
}

// NewSentryReporter captures notifications as Sentry messages on hub. A nil
// hub falls back to the current hub.
func NewSentryReporter(hub *sentry.Hub) Reporter {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &sentryReporter{hub: hub}
}

func (r *sentryReporter) NotifyError(message, detail string, userFacing bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelError)
		scope.SetTag("user_facing", strconv.FormatBool(userFacing))
		if detail != "" {
			scope.SetContext("notification", sentry.Context{"detail": detail})
		}
		r.hub.CaptureMessage(message)
	})
}
