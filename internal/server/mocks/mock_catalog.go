// Package mocks holds testify mocks of the server contracts.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Sternrassler/spotify-catalog-client/pkg/client"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Do(ctx context.Context, req client.Request) (client.Result, error) {
	args := m.Called(ctx, req)

	var result client.Result
	if r := args.Get(0); r != nil {
		result = r.(client.Result)
	}

	return result, args.Error(1)
}
