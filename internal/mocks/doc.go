// Package mocks provides hand-written mock implementations for testing.
//
// Mocks use function fields for each interface method so a test can inject
// exactly the behavior it needs and leave the rest at their defaults:
//
//	mockStore := &mocks.MockTaskStore{
//	    GetFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
//	        return nil, store.ErrTaskNotFound
//	    },
//	}
//
// MockTaskStore also records the order of calls, which lets handler tests
// assert that validation failures never reach the store.
package mocks
