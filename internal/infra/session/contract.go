package session

// Metrics метрики хранилища сессий
type Metrics interface {
	SetActiveWizards(count int)
}
