package event

// EventSchemaVersion is stamped on every event this package builds
const EventSchemaVersion = "1.0"

// MetadataKeyRoomID is the metadata key carrying the room an event belongs to
const MetadataKeyRoomID = "room_id"

// ErrContextSubscribersFailedFormat takes the event type and the number of failed subscribers
const ErrContextSubscribersFailedFormat = "event %s: %d subscriber(s) failed"
