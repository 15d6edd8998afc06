package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/caelum-portal/internal/events"
)

var auditedEvents = []events.EventType{
	events.EventUserRegistered,
	events.EventUserLoggedIn,
	events.EventAdminLoggedIn,
	events.EventLoggedOut,
	events.EventLoginFailed,
}

// StartAuditWorker subscribes a structured audit logger to every auth event.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}
	audit := logger.Named("audit")
	handler := func(_ context.Context, e events.Event) error {
		fields := []zap.Field{
			zap.String("event_id", e.ID),
			zap.String("event", string(e.Type)),
			zap.String("principal", string(e.Principal)),
			zap.Time("at", e.Timestamp),
		}
		if e.SubjectID != "" {
			fields = append(fields, zap.String("subject_id", e.SubjectID))
		}
		if e.Type == events.EventLoginFailed {
			audit.Warn("auth event", append(fields, zap.String("email", e.Email))...)
			return nil
		}
		audit.Info("auth event", fields...)
		return nil
	}
	for _, t := range auditedEvents {
		dispatcher.Subscribe(t, handler)
	}
}
