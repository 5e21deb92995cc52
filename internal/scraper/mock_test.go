package scraper

import (
	"errors"
	"time"

	"aliyevr/binascraper/services/cache"
)

// MockCacheService implements a simple in-memory cache for testing
type MockCacheService struct {
	cache map[string][]byte
}

// Ensure MockCacheService implements cache.CacheService
var _ cache.CacheService = (*MockCacheService)(nil)

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{
		cache: make(map[string][]byte),
	}
}

func (m *MockCacheService) Get(key string) ([]byte, error) {
	if val, ok := m.cache[key]; ok {
		return val, nil
	}
	return nil, errors.New("cache miss")
}

func (m *MockCacheService) Set(key string, value []byte, expiration time.Duration) error {
	m.cache[key] = value
	return nil
}

func (m *MockCacheService) Delete(key string) error {
	delete(m.cache, key)
	return nil
}

// MockPhoneResolver returns a fixed phone number
type MockPhoneResolver struct {
	phone string
}

// Ensure MockPhoneResolver implements PhoneResolver
var _ PhoneResolver = (*MockPhoneResolver)(nil)

func (m *MockPhoneResolver) Resolve(itemID string) string {
	return m.phone
}
