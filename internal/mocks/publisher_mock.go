// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/kit-service/internal/messaging"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishAssignmentEvent(ctx context.Context, event *messaging.AssignmentEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ messaging.Publisher = (*MockPublisher)(nil)
