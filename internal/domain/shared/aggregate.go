package shared

// AggregateRoot is implemented by entities that record domain events.
type AggregateRoot interface {
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// EventRecorder collects domain events until the aggregate has been saved.
// Embed it with `gorm:"-"`.
type EventRecorder struct {
	domainEvents []DomainEvent
}

// AddDomainEvent adds a domain event to be published
func (r *EventRecorder) AddDomainEvent(event DomainEvent) {
	r.domainEvents = append(r.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (r *EventRecorder) GetDomainEvents() []DomainEvent {
	return r.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (r *EventRecorder) ClearDomainEvents() {
	r.domainEvents = nil
}
