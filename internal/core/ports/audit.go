package ports

import (
	"context"

	"github.com/companyhq/company-api/internal/core/domain"
)

// AuditRecorder accepts auth events for asynchronous persistence. Record is
// best-effort and must never block the request path: implementations drop
// the event (and count the drop) when their queue is full.
type AuditRecorder interface {
	Record(event domain.AuthEvent)
}

// AuditRepository persists auth events to the audit collection.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}
