package reconcile_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"contract-manager/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type account struct {
	ID      string
	AgentID string
	Name    string
	Display string // joined, read-only
}

func (a *account) RecordID() string        { return a.ID }
func (a *account) OwnerID() string         { return a.AgentID }
func (a *account) SetOwner(agentID string) { a.AgentID = agentID }
func (a *account) StripProjections()       { a.Display = "" }

type person struct {
	Name  string
	Email string
}

func (p *person) Normalize() {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) UpsertParent(ctx context.Context, parent *account) (*account, error) {
	args := m.Called(ctx, parent)
	if fn, ok := args.Get(0).(func(*account) *account); ok {
		return fn(parent), args.Error(1)
	}
	if a, ok := args.Get(0).(*account); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) DeleteChildren(ctx context.Context, parentID string) error {
	return m.Called(ctx, parentID).Error(0)
}

func (m *mockStore) InsertChildren(ctx context.Context, children []person, parentID, agentID string) error {
	return m.Called(ctx, children, parentID, agentID).Error(0)
}

var (
	admin = reconcile.Actor{ID: "admin-1", Role: reconcile.RoleAdmin}
	agent = reconcile.Actor{ID: "agent-1", Role: reconcile.RoleAgent}
)

func withID(id string) func(*account) *account {
	return func(a *account) *account {
		out := *a
		if out.ID == "" {
			out.ID = id
		}
		return &out
	}
}

func TestEngine_Save_CreatePath(t *testing.T) {
	store := new(mockStore)
	engine := reconcile.NewEngine[*account, person](store, reconcile.PolicyWarn, zap.NewNop())

	children := []person{{Name: "Anna", Email: " Anna@Example.com "}}

	store.On("UpsertParent", mock.Anything, mock.MatchedBy(func(a *account) bool { return a.ID == "" })).
		Return(withID("new-id"), nil).Once()
	store.On("DeleteChildren", mock.Anything, "new-id").Return(nil).Once()
	store.On("InsertChildren", mock.Anything, []person{{Name: "Anna", Email: "anna@example.com"}}, "new-id", "agent-1").
		Return(nil).Once()

	res, err := engine.Save(context.Background(), agent, &account{Name: "Acme"}, children)
	require.NoError(t, err)
	assert.Equal(t, "new-id", res.ParentID)
	assert.Equal(t, "agent-1", res.OwnerID)
	assert.Equal(t, reconcile.StateSucceeded, res.State)
	assert.Empty(t, res.Warnings)

	// The caller's list is returned untouched.
	assert.Equal(t, " Anna@Example.com ", res.Children[0].Email)
	store.AssertExpectations(t)
}

func TestEngine_Save_NonPrivilegedOwnerForced(t *testing.T) {
	store := new(mockStore)
	engine := reconcile.NewEngine[*account, person](store, reconcile.PolicyWarn, nil)

	store.On("UpsertParent", mock.Anything, mock.MatchedBy(func(a *account) bool { return a.AgentID == "agent-1" })).
		Return(withID("c-1"), nil).Once()
	store.On("DeleteChildren", mock.Anything, "c-1").Return(nil)
	store.On("InsertChildren", mock.Anything, mock.Anything, "c-1", "agent-1").Return(nil)

	parent := &account{ID: "c-1", AgentID: "someone-else", Display: "Rossi Mario"}
	res, err := engine.Save(context.Background(), agent, parent, []person{{Name: "Luca"}})
	require.NoError(t, err)
	assert.Equal(t, "agent-1", res.OwnerID)
	assert.Equal(t, "agent-1", parent.AgentID)
	assert.Empty(t, parent.Display)
	store.AssertExpectations(t)
}

func TestEngine_Save_PrivilegedKeepsChosenOwner(t *testing.T) {
	store := new(mockStore)
	engine := reconcile.NewEngine[*account, person](store, reconcile.PolicyWarn, zap.NewNop())

	store.On("UpsertParent", mock.Anything, mock.MatchedBy(func(a *account) bool { return a.AgentID == "agent-9" })).
		Return(withID("c-2"), nil)
	store.On("DeleteChildren", mock.Anything, "c-2").Return(nil)

	res, err := engine.Save(context.Background(), admin, &account{AgentID: "agent-9"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "agent-9", res.OwnerID)
	store.AssertNotCalled(t, "InsertChildren", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEngine_Save_EmptyChildrenSkipsInsert(t *testing.T) {
	store := new(mockStore)
	engine := reconcile.NewEngine[*account, person](store, reconcile.PolicyWarn, zap.NewNop())

	store.On("UpsertParent", mock.Anything, mock.Anything).Return(withID("c-3"), nil)
	store.On("DeleteChildren", mock.Anything, "c-3").Return(nil).Once()

	res, err := engine.Save(context.Background(), agent, &account{ID: "c-3"}, []person{})
	require.NoError(t, err)
	assert.Empty(t, res.Children)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "InsertChildren", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEngine_Save_ParentWriteFailureTouchesNoChildren(t *testing.T) {
	store := new(mockStore)
	engine := reconcile.NewEngine[*account, person](store, reconcile.PolicyWarn, zap.NewNop())

	store.On("UpsertParent", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	res, err := engine.Save(context.Background(), agent, &account{}, []person{{Name: "Anna"}})
	assert.Nil(t, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, reconcile.ErrParentWrite)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, reconcile.StateFailed, reconcile.StateOf(err))
	assert.False(t, reconcile.IsPartial(err))

	store.AssertNotCalled(t, "DeleteChildren", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "InsertChildren", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEngine_Save_MissingParentID(t *testing.T) {
	store := new(mockStore)
	engine := reconcile.NewEngine[*account, person](store, reconcile.PolicyWarn, zap.NewNop())

	store.On("UpsertParent", mock.Anything, mock.Anything).Return(&account{}, nil)

	_, err := engine.Save(context.Background(), agent, &account{}, nil)
	assert.ErrorIs(t, err, reconcile.ErrMissingParentID)
	assert.Equal(t, reconcile.StatePartiallyFailed, reconcile.StateOf(err))
	assert.True(t, reconcile.IsPartial(err))
	store.AssertNotCalled(t, "DeleteChildren", mock.Anything, mock.Anything)
}

func TestEngine_Save_LogsParentOnce(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	store := new(mockStore)
	engine := reconcile.NewEngine[*account, person](store, reconcile.PolicyWarn, zap.New(core))

	store.On("UpsertParent", mock.Anything, mock.Anything).Return(withID("c-9"), nil)
	store.On("DeleteChildren", mock.Anything, "c-9").Return(nil)

	res, err := engine.Save(context.Background(), agent, &account{ID: "c-9"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "c-9", res.Parent.ID)

	saved := logs.FilterMessage("Record saved").All()
	require.Len(t, saved, 1)
	count := 0
	for _, f := range saved[0].Context {
		if f.Key == "parent" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "c-9", saved[0].ContextMap()["parent"])
}

func TestEngine_Save_ChildDeleteFailure(t *testing.T) {
	t.Run("Warn Continues", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		store := new(mockStore)
		engine := reconcile.NewEngine[*account, person](store, reconcile.PolicyWarn, zap.New(core))

		store.On("UpsertParent", mock.Anything, mock.Anything).Return(withID("c-4"), nil)
		store.On("DeleteChildren", mock.Anything, "c-4").Return(errors.New("lock timeout"))
		store.On("InsertChildren", mock.Anything, mock.Anything, "c-4", "agent-1").Return(nil).Once()

		res, err := engine.Save(context.Background(), agent, &account{}, []person{{Name: "Anna"}})
		require.NoError(t, err)
		assert.Equal(t, reconcile.StateSucceeded, res.State)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "lock timeout")
		assert.Equal(t, 1, logs.FilterMessage("Child delete failed, continuing").Len())
		store.AssertExpectations(t)
	})

	t.Run("Abort Stops", func(t *testing.T) {
		store := new(mockStore)
		engine := reconcile.NewEngine[*account, person](store, reconcile.PolicyAbort, zap.NewNop())

		store.On("UpsertParent", mock.Anything, mock.Anything).Return(withID("c-5"), nil)
		store.On("DeleteChildren", mock.Anything, "c-5").Return(errors.New("lock timeout"))

		res, err := engine.Save(context.Background(), agent, &account{}, []person{{Name: "Anna"}})
		assert.Nil(t, res)
		assert.ErrorIs(t, err, reconcile.ErrChildDelete)
		assert.True(t, reconcile.IsPartial(err))

		var se *reconcile.SaveError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "c-5", se.ParentID)
		store.AssertNotCalled(t, "InsertChildren", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEngine_Save_ChildInsertFailureIsPartial(t *testing.T) {
	store := new(mockStore)
	engine := reconcile.NewEngine[*account, person](store, reconcile.PolicyWarn, zap.NewNop())

	store.On("UpsertParent", mock.Anything, mock.Anything).Return(withID("c-6"), nil)
	store.On("DeleteChildren", mock.Anything, "c-6").Return(nil)
	store.On("InsertChildren", mock.Anything, mock.Anything, "c-6", "agent-1").Return(errors.New("duplicate key"))

	_, err := engine.Save(context.Background(), agent, &account{}, []person{{Name: "Anna"}})
	assert.ErrorIs(t, err, reconcile.ErrChildInsert)
	assert.Equal(t, reconcile.StatePartiallyFailed, reconcile.StateOf(err))
	assert.Contains(t, err.Error(), "c-6")
}

func TestEngine_Save_ValidationFailureWritesNothing(t *testing.T) {
	store := new(mockStore)
	errInvalid := errors.New("name required")
	engine := reconcile.NewEngine[*account, person](store, reconcile.PolicyWarn, zap.NewNop(),
		reconcile.WithValidation[*account, person](func(a *account, _ []person) error {
			if a.Name == "" {
				return errInvalid
			}
			return nil
		}))

	_, err := engine.Save(context.Background(), agent, &account{}, nil)
	assert.ErrorIs(t, err, errInvalid)
	assert.Equal(t, reconcile.StateFailed, reconcile.StateOf(err))
	store.AssertNotCalled(t, "UpsertParent", mock.Anything, mock.Anything)
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    reconcile.Policy
		wantErr bool
	}{
		{"", reconcile.PolicyWarn, false},
		{"warn", reconcile.PolicyWarn, false},
		{" ABORT ", reconcile.PolicyAbort, false},
		{"ignore", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := reconcile.ParsePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActor(t *testing.T) {
	assert.Equal(t, "agent-2", admin.ResolveOwner("agent-2"))
	assert.Equal(t, "", admin.ResolveOwner(""))
	assert.Equal(t, "agent-1", agent.ResolveOwner("agent-2"))

	assert.True(t, admin.CanAccess("anyone"))
	assert.True(t, agent.CanAccess("agent-1"))
	assert.False(t, agent.CanAccess("agent-2"))
	assert.False(t, reconcile.Actor{}.CanAccess(""))
}

func TestStateOf(t *testing.T) {
	assert.Equal(t, reconcile.StateSucceeded, reconcile.StateOf(nil))
	assert.Equal(t, reconcile.StateFailed, reconcile.StateOf(errors.New("plain")))
}
