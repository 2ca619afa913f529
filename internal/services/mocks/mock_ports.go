package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Lllllllleong/rfpingest/internal/services"
)

type MockObjectSource struct {
	mock.Mock
}

func (m *MockObjectSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) MarkProcessing(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockDocumentStore) MarkReady(ctx context.Context, ref string, result *services.Result) error {
	args := m.Called(ctx, ref, result)
	return args.Error(0)
}

func (m *MockDocumentStore) MarkFailed(ctx context.Context, ref string, message string) error {
	args := m.Called(ctx, ref, message)
	return args.Error(0)
}
