package eventbus

import (
	"pkt.systems/jirasoap/schema"
	"pkt.systems/pslog"
)

// AuditLog writes one log entry per tracker mutation.
type AuditLog struct {
	log pslog.Logger
}

// NewAuditLog returns an audit sink writing to logger.
func NewAuditLog(logger pslog.Logger) *AuditLog {
	return &AuditLog{log: logger.With("component", "audit")}
}

// OnTrackerEvent logs the event.
func (a *AuditLog) OnTrackerEvent(event schema.TrackerEvent) {
	if a == nil || a.log == nil {
		return
	}
	fields := []any{"type", string(event.Type), "actor", event.Actor}
	if event.Project != "" {
		fields = append(fields, "project", event.Project)
	}
	if event.Issue != "" {
		fields = append(fields, "issue", event.Issue)
	}
	if event.Subject != "" {
		fields = append(fields, "subject", event.Subject)
	}
	if event.Detail != "" {
		fields = append(fields, "detail", event.Detail)
	}
	if !event.Time.IsZero() {
		fields = append(fields, "at", event.Time)
	}
	a.log.Info("audit event", fields...)
}
