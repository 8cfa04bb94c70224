package core

import (
	"context"
	"time"

	"pkt.systems/jirasoap/schema"
	"pkt.systems/pslog"
)

// Accounts authenticates users and owns their profiles. *auth.Store
// satisfies it.
type Accounts interface {
	Authenticate(username, password string) error
	Lookup(username string) (schema.RemoteUser, bool)
	List() []schema.RemoteUser
	Create(profile schema.RemoteUser, password string) error
	Delete(username string) error
}

// AttachmentStore holds attachment content keyed by attachment id.
type AttachmentStore interface {
	Put(ctx context.Context, id int64, data []byte) error
	Get(ctx context.Context, id int64) ([]byte, error)
	Delete(ctx context.Context, id int64) error
}

// Deps captures optional dependencies for the tracker.
type Deps struct {
	Accounts    Accounts
	Attachments AttachmentStore
	EventSink   EventSink
	Logger      pslog.Logger
	Now         func() time.Time
}
