package optionsadapter

import (
	"context"
	"sync"
	"testing"

	"github.com/goliatone/go-options/pkg/state"

	"github.com/goliatone/go-navfilter/flagsource"
)

type memoryStateStore struct {
	mu        sync.RWMutex
	snapshots map[string]map[string]any
}

func newMemoryStateStore() *memoryStateStore {
	return &memoryStateStore{snapshots: map[string]map[string]any{}}
}

func (m *memoryStateStore) Load(_ context.Context, ref state.Ref) (map[string]any, state.Meta, bool, error) {
	key, err := ref.Identifier()
	if err != nil {
		return nil, state.Meta{}, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	snapshot, ok := m.snapshots[key]
	if !ok {
		return nil, state.Meta{}, false, nil
	}
	return cloneSnapshot(snapshot), state.Meta{}, true, nil
}

func (m *memoryStateStore) Save(_ context.Context, ref state.Ref, snapshot map[string]any, _ state.Meta) (state.Meta, error) {
	key, err := ref.Identifier()
	if err != nil {
		return state.Meta{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[key] = cloneSnapshot(snapshot)
	return state.Meta{}, nil
}

func (m *memoryStateStore) seed(ref state.Ref, snapshot map[string]any) error {
	key, err := ref.Identifier()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[key] = cloneSnapshot(snapshot)
	return nil
}

func cloneSnapshot(snapshot map[string]any) map[string]any {
	if snapshot == nil {
		return nil
	}
	out := make(map[string]any, len(snapshot))
	for key, value := range snapshot {
		out[key] = value
	}
	return out
}

func TestSourceLoadScopePrecedence(t *testing.T) {
	ctx := context.Background()
	stateStore := newMemoryStateStore()
	source := NewSource(stateStore)

	systemScope := scoped("system", "System", prioritySystem, "", "")
	userScope := scoped("user", "User", priorityUser, metadataUserID, "user-1")

	if err := stateStore.seed(state.Ref{Domain: DefaultDomain, Scope: systemScope}, map[string]any{
		"beta": true,
		"base": true,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := stateStore.seed(state.Ref{Domain: DefaultDomain, Scope: userScope}, map[string]any{
		"beta": false,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	flags, err := source.Load(ctx, flagsource.Subject{UserID: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flags.Enabled("beta") {
		t.Fatalf("expected user scope to override the system value")
	}
	if !flags.Enabled("base") {
		t.Fatalf("expected system value to carry through")
	}
}

func TestSourceLoadFlattensNestedSnapshots(t *testing.T) {
	ctx := context.Background()
	stateStore := newMemoryStateStore()
	source := NewSource(stateStore)

	systemScope := scoped("system", "System", prioritySystem, "", "")
	if err := stateStore.seed(state.Ref{Domain: DefaultDomain, Scope: systemScope}, map[string]any{
		"nav": map[string]any{
			"beta": true,
			"note": "not-a-flag",
		},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	flags, err := source.Load(ctx, flagsource.Subject{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !flags.Enabled("nav.beta") {
		t.Fatalf("expected nested boolean under dotted key, got %v", flags)
	}
	if _, ok := flags["nav.note"]; ok {
		t.Fatalf("non-boolean leaves should be ignored")
	}
}

func TestSourceRequiresStore(t *testing.T) {
	source := NewSource(nil)
	if _, err := source.Load(context.Background(), flagsource.Subject{}); err == nil {
		t.Fatalf("expected error without a state store")
	}
}
