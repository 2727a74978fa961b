package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия мастера не существует или истекла
	ErrSessionNotFound = errors.New("session.store: wizard session not found")
)
