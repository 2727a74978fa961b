package domain

// Service is a bookable offering of a business (grooming, walking, boarding...)
// CategoryName comes from an optional join and may be absent
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	CategoryName    *string
	Price           float64
	DurationMinutes int
	IsActive        bool
}

// Provider is a staff member or location that performs services of a business
type Provider struct {
	ID         int64
	BusinessID int64
	OwnerID    int64 // владелец бизнеса, которому принадлежит специалист
	Name       *string
	IsActive   bool
}

// Package is a prepaid bundle of sessions for a service
// When selected it replaces the per-occurrence price computation entirely
type Package struct {
	ID                 int64
	ServiceID          int64
	Name               string
	Description        *string
	Price              float64
	TotalSessions      int
	DiscountPercentage int
	IsActive           bool
}

// DisplayName returns the provider name or a fallback for unnamed providers
func (p *Provider) DisplayName() string {
	if p.Name == nil || *p.Name == "" {
		return DefaultProviderName
	}
	return *p.Name
}

// DisplayCategory returns the category name or a fallback when the join was empty
func (s *Service) DisplayCategory() string {
	if s.CategoryName == nil || *s.CategoryName == "" {
		return DefaultCategoryName
	}
	return *s.CategoryName
}
