package domain

// ServicePackage cremation package offered by a provider
type ServicePackage struct {
	ID         int64
	ProviderID int64
	Name       string
	Price      float64
	IsActive   bool
}

// UserContact contact details used for notifications
type UserContact struct {
	ID        int64
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
}

// FullName returns "First Last" without surrounding spaces
func (u *UserContact) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
