// Package cache хранит значения с ограниченным сроком жизни.
package cache

import (
	"sync"
	"time"
)

// cleanupThreshold - размер, после которого Put удаляет просроченные элементы.
const cleanupThreshold = 1024

// Item представляет кэшированное значение
type Item[V any] struct {
	Value     V
	ExpiresAt time.Time
}

// Store управляет хранением и извлечением значений по ключу
type Store[V any] struct {
	items map[string]Item[V]
	ttl   time.Duration
	now   func() time.Time
	mutex sync.RWMutex
}

// NewStore создает хранилище, в котором элементы живут ttl.
func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		items: make(map[string]Item[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get извлекает значение по ключу
func (s *Store[V]) Get(key string) (V, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	item, exists := s.items[key]
	if !exists || !s.now().Before(item.ExpiresAt) {
		// Элемент не существует или срок его действия истек
		var zero V
		return zero, false
	}

	return item.Value, true
}

// Put сохраняет значение на время ttl хранилища
func (s *Store[V]) Put(key string, value V) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.items) >= cleanupThreshold {
		s.cleanupExpiredLocked()
	}
	s.items[key] = Item[V]{
		Value:     value,
		ExpiresAt: s.now().Add(s.ttl),
	}
}

// Delete удаляет значение
func (s *Store[V]) Delete(key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.items, key)
}

// Len возвращает число элементов, включая еще не удаленные просроченные
func (s *Store[V]) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.items)
}

// CleanupExpired удаляет просроченные элементы
func (s *Store[V]) CleanupExpired() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.cleanupExpiredLocked()
}

func (s *Store[V]) cleanupExpiredLocked() {
	now := s.now()
	for key, item := range s.items {
		if !now.Before(item.ExpiresAt) {
			delete(s.items, key)
		}
	}
}
