package promo

import (
	"context"
	"fmt"
)

// MockMutatorCall records one mutation the mock received.
type MockMutatorCall struct {
	Method        string
	CollectionGID string
	ProductGID    string
}

// MockMutator is a CollectionMutator for testing. Override AddFunc or
// RemoveFunc to inject behavior; every call is appended to CallLog.
type MockMutator struct {
	AddFunc    func(ctx context.Context, collectionGID, productGID string) error
	RemoveFunc func(ctx context.Context, collectionGID, productGID string) error

	CallLog []MockMutatorCall
}

func NewMockMutator() *MockMutator {
	return &MockMutator{}
}

func (m *MockMutator) AddProductToCollection(ctx context.Context, collectionGID, productGID string) error {
	m.CallLog = append(m.CallLog, MockMutatorCall{
		Method:        "AddProductToCollection",
		CollectionGID: collectionGID,
		ProductGID:    productGID,
	})
	if m.AddFunc != nil {
		return m.AddFunc(ctx, collectionGID, productGID)
	}
	return nil
}

func (m *MockMutator) RemoveProductFromCollection(ctx context.Context, collectionGID, productGID string) error {
	m.CallLog = append(m.CallLog, MockMutatorCall{
		Method:        "RemoveProductFromCollection",
		CollectionGID: collectionGID,
		ProductGID:    productGID,
	})
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, collectionGID, productGID)
	}
	return nil
}

// Reset clears the call log.
func (m *MockMutator) Reset() {
	m.CallLog = nil
}

// FailOn makes every call against the given collection GID fail.
func (m *MockMutator) FailOn(collectionGID string) {
	fail := func(ctx context.Context, gid, productGID string) error {
		if gid == collectionGID {
			return fmt.Errorf("simulated failure for %s", gid)
		}
		return nil
	}
	m.AddFunc = fail
	m.RemoveFunc = fail
}
