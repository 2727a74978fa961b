package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/m04kA/PetCare-BookingService/internal/wizard"
)

const (
	defaultTTL     = 30 * time.Minute
	defaultCleanup = 5 * time.Minute
)

type entry struct {
	mu     sync.Mutex
	wizard *wizard.Wizard
}

// Store хранит мастера бронирования в памяти процесса
// Каждое обращение продлевает жизнь сессии на ttl
type Store struct {
	cache   *cache.Cache
	metrics Metrics
}

// NewStore создает хранилище; нулевые значения заменяются значениями по умолчанию
// metrics может быть nil
func NewStore(ttl, cleanupInterval time.Duration, metrics Metrics) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanup
	}

	s := &Store{
		cache:   cache.New(ttl, cleanupInterval),
		metrics: metrics,
	}
	s.cache.OnEvicted(func(string, interface{}) {
		s.reportCount()
	})
	return s
}

// Create сохраняет новый мастер и возвращает идентификатор сессии
func (s *Store) Create(w *wizard.Wizard) string {
	id := uuid.NewString()
	s.cache.SetDefault(id, &entry{wizard: w})
	s.reportCount()
	return id
}

// With выполняет fn над мастером под блокировкой сессии
// Запросы к одной сессии выполняются строго по очереди
func (s *Store) With(id string, fn func(w *wizard.Wizard) error) error {
	raw, ok := s.cache.Get(id)
	if !ok {
		return ErrSessionNotFound
	}
	e := raw.(*entry)

	e.mu.Lock()
	defer e.mu.Unlock()

	// Продлеваем TTL
	s.cache.SetDefault(id, e)

	return fn(e.wizard)
}

// Delete удаляет сессию
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Count количество живых сессий
func (s *Store) Count() int {
	return s.cache.ItemCount()
}

func (s *Store) reportCount() {
	if s.metrics != nil {
		s.metrics.SetActiveWizards(s.cache.ItemCount())
	}
}
