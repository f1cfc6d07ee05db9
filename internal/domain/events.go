package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventPhotosLoaded      EventType = "PhotosLoaded"
	EventRefreshRequested  EventType = "RefreshRequested"
	EventPersonsLoaded     EventType = "PersonsLoaded"
	EventGuestCountUpdated EventType = "GuestCountUpdated"
	EventBulkProgress      EventType = "BulkProgress"
	EventBulkCompleted     EventType = "BulkCompleted"
	EventUploadCompleted   EventType = "UploadCompleted"
	EventSessionChanged    EventType = "SessionChanged"
	EventError             EventType = "Error"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// PhotosLoadedEvent is emitted when a tab's photo list has been replaced
type PhotosLoadedEvent struct {
	Tab      Tab
	PersonID string
	Photos   []Photo
	Revision uint64
	Stale    bool // served from the local cache after a failed refresh
}

func (e PhotosLoadedEvent) Type() EventType { return EventPhotosLoaded }

// RefreshRequestedEvent asks the photo source to refetch a tab
type RefreshRequestedEvent struct {
	Tab Tab
}

func (e RefreshRequestedEvent) Type() EventType { return EventRefreshRequested }

// PersonsLoadedEvent is emitted when the persons list arrives
type PersonsLoadedEvent struct {
	Persons []Person
	Err     error
}

func (e PersonsLoadedEvent) Type() EventType { return EventPersonsLoaded }

// GuestCountUpdatedEvent carries the live guest counter
type GuestCountUpdatedEvent struct {
	Count int
}

func (e GuestCountUpdatedEvent) Type() EventType { return EventGuestCountUpdated }

// BulkProgressEvent reports busy state changes of a share or delete
type BulkProgressEvent struct {
	Busy bool
	Text string
}

func (e BulkProgressEvent) Type() EventType { return EventBulkProgress }

// BulkCompletedEvent is emitted when a share or delete finishes
type BulkCompletedEvent struct {
	Op     string // "share" or "delete"
	Count  int
	Copied bool // share fell back to the clipboard
	Err    error
}

func (e BulkCompletedEvent) Type() EventType { return EventBulkCompleted }

// UploadCompletedEvent is emitted after an upload round trip
type UploadCompletedEvent struct {
	Result UploadResult
	Err    error
}

func (e UploadCompletedEvent) Type() EventType { return EventUploadCompleted }

// SessionChangedEvent is emitted on login, logout and token loss
type SessionChangedEvent struct {
	User User
}

func (e SessionChangedEvent) Type() EventType { return EventSessionChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	APIURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
