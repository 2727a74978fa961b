package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/wizard"
)

type countingMetrics struct {
	mu   sync.Mutex
	last int
}

func (m *countingMetrics) SetActiveWizards(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = count
}

func newWizard() *wizard.Wizard {
	return wizard.New(nil, domain.Service{ID: 1, Price: 10}, []domain.Provider{{ID: 2}}, nil, 42)
}

func TestStore_CreateAndWith(t *testing.T) {
	m := &countingMetrics{}
	s := NewStore(time.Minute, time.Minute, m)

	id := s.Create(newWizard())
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, 1, m.last)

	err := s.With(id, func(w *wizard.Wizard) error {
		assert.Equal(t, int64(42), w.OwnerID())
		return nil
	})
	require.NoError(t, err)

	wantErr := errors.New("boom")
	assert.Equal(t, wantErr, s.With(id, func(*wizard.Wizard) error { return wantErr }))
}

func TestStore_NotFound(t *testing.T) {
	s := NewStore(0, 0, nil)

	err := s.With("missing", func(*wizard.Wizard) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_Expired(t *testing.T) {
	s := NewStore(20*time.Millisecond, time.Hour, nil)
	id := s.Create(newWizard())

	time.Sleep(40 * time.Millisecond)

	err := s.With(id, func(*wizard.Wizard) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_SerializesAccess(t *testing.T) {
	s := NewStore(time.Minute, time.Minute, nil)
	id := s.Create(newWizard())

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		overlap bool
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.With(id, func(*wizard.Wizard) error {
				mu.Lock()
				inside++
				if inside > 1 {
					overlap = true
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.False(t, overlap)
}

func TestStore_Delete(t *testing.T) {
	s := NewStore(time.Minute, time.Minute, nil)
	id := s.Create(newWizard())

	s.Delete(id)
	assert.Zero(t, s.Count())
	assert.ErrorIs(t, s.With(id, func(*wizard.Wizard) error { return nil }), ErrSessionNotFound)
}
