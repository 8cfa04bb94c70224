package eventbus

import (
	"context"
	"sync"

	"pkt.systems/jirasoap/schema"
	"pkt.systems/pslog"
)

// AllProjects subscribes to events of every project, including events
// without a project such as user and scheme changes.
const AllProjects = ""

// Bus fans tracker events out to subscribers of a project.
type Bus struct {
	mu    sync.Mutex
	subs  map[string]map[chan schema.TrackerEvent]struct{}
	log   pslog.Logger
	depth int
}

// New constructs a Bus.
func New(logger pslog.Logger) *Bus {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Bus{
		subs:  make(map[string]map[chan schema.TrackerEvent]struct{}),
		log:   logger,
		depth: 256,
	}
}

// Subscribe registers a subscriber for a project key, or AllProjects, and
// returns its channel and a cancel func that closes it.
func (b *Bus) Subscribe(project string) (<-chan schema.TrackerEvent, func()) {
	if b == nil {
		return nil, func() {}
	}
	ch := make(chan schema.TrackerEvent, b.depth)
	b.mu.Lock()
	topicSubs := b.subs[project]
	if topicSubs == nil {
		topicSubs = make(map[chan schema.TrackerEvent]struct{})
		b.subs[project] = topicSubs
	}
	topicSubs[ch] = struct{}{}
	count := len(topicSubs)
	b.mu.Unlock()
	b.log.With("project", project).Debug("eventbus subscribe", "subs", count)
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			if subs := b.subs[project]; subs != nil {
				delete(subs, ch)
				if len(subs) == 0 {
					delete(b.subs, project)
				}
			}
			b.mu.Unlock()
			close(ch)
			b.log.With("project", project).Debug("eventbus unsubscribe")
		})
	}
}

// OnTrackerEvent publishes an event to the subscribers of its project and
// to AllProjects subscribers. Full subscriber channels drop the event.
func (b *Bus) OnTrackerEvent(event schema.TrackerEvent) {
	if b == nil {
		return
	}
	b.mu.Lock()
	var subs []chan schema.TrackerEvent
	for sub := range b.subs[AllProjects] {
		subs = append(subs, sub)
	}
	if event.Project != AllProjects {
		for sub := range b.subs[event.Project] {
			subs = append(subs, sub)
		}
	}
	// Send under the lock: cancel closes channels while holding it.
	dropped := 0
	for _, sub := range subs {
		select {
		case sub <- event:
		default:
			dropped++
		}
	}
	b.mu.Unlock()
	if dropped > 0 {
		b.log.With("project", event.Project).Trace("eventbus dropped", "count", dropped, "type", string(event.Type))
	}
}

// Sink receives tracker events.
type Sink interface {
	OnTrackerEvent(event schema.TrackerEvent)
}

// Fanout forwards events to several sinks in order.
type Fanout []Sink

// OnTrackerEvent forwards the event to every non-nil sink.
func (f Fanout) OnTrackerEvent(event schema.TrackerEvent) {
	for _, sink := range f {
		if sink != nil {
			sink.OnTrackerEvent(event)
		}
	}
}
