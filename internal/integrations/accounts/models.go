package accounts

// Account модель аккаунта из сервиса аккаунтов
type Account struct {
	ID          int64   `json:"id"`
	IsAdmin     bool    `json:"is_admin"`
	BusinessIDs []int64 `json:"business_ids"`
}
