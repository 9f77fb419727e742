package mocks

import (
	"github.com/news-api/internal/auth"
	"github.com/stretchr/testify/mock"
)

// MockHasher is a testify mock of auth.Hasher
type MockHasher struct {
	mock.Mock
}

var _ auth.Hasher = (*MockHasher)(nil)

func (m *MockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

// MockTokens is a testify mock of auth.Tokens
type MockTokens struct {
	mock.Mock
}

var _ auth.Tokens = (*MockTokens)(nil)

func (m *MockTokens) Issue(username string) (string, error) {
	args := m.Called(username)
	return args.String(0), args.Error(1)
}

func (m *MockTokens) Verify(token string) (*auth.Claims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*auth.Claims)
	return claims, args.Error(1)
}
