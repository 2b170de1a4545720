package domain

// Actor the caller of an operation, as identified by the upstream gateway
type Actor struct {
	ID         int64
	Type       ActorType
	ProviderID *int64 // провайдер, которым управляет сотрудник (только для ActorProvider)
}

// IsAdmin returns true for admin and system actors
func (a Actor) IsAdmin() bool {
	return a.Type == ActorAdmin || a.Type == ActorSystem
}

// ManagesProvider returns true if the actor is staff of the given provider
func (a Actor) ManagesProvider(providerID int64) bool {
	return a.Type == ActorProvider && a.ProviderID != nil && *a.ProviderID == providerID
}

// CanView returns true if the actor may read the booking
func (a Actor) CanView(b *Booking) bool {
	return a.IsAdmin() || b.UserID == a.ID || a.ManagesProvider(b.ProviderID)
}
