package core

import "pkt.systems/jirasoap/schema"

// EventSink receives tracker mutation events.
type EventSink interface {
	OnTrackerEvent(event schema.TrackerEvent)
}
