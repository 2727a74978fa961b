package access

import "github.com/m04kA/PetCare-BookingService/internal/domain"

// Classify определяет роль пользователя по сессии и данным аккаунта
// Без сессии - guest; account == nil трактуется как обычный пользователь
func Classify(session domain.Session, account *domain.Account) domain.UserType {
	if session.IsAnonymous() {
		return domain.UserGuest
	}
	if account == nil {
		return domain.UserRegular
	}
	if account.IsAdmin {
		return domain.UserAdmin
	}
	if len(account.BusinessIDs) > 0 {
		return domain.UserBusiness
	}
	return domain.UserRegular
}
