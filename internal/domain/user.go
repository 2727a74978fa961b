package domain

// UserType is the role derived from the current session
type UserType string

const (
	UserGuest    UserType = "guest"
	UserRegular  UserType = "user"
	UserBusiness UserType = "business"
	UserAdmin    UserType = "admin"
)

// Session identifies the caller; a zero UserID means no session
type Session struct {
	UserID int64
}

// IsAnonymous returns true when there is no authenticated user
func (s Session) IsAnonymous() bool {
	return s.UserID <= 0
}

// Account is the account record kept by the hosted backend
type Account struct {
	UserID      int64
	IsAdmin     bool
	BusinessIDs []int64
}

// OwnsBusiness returns true if the account manages the given business
func (a *Account) OwnsBusiness(businessID int64) bool {
	for _, id := range a.BusinessIDs {
		if id == businessID {
			return true
		}
	}
	return false
}
