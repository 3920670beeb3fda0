package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Role is the privilege level of the actor issuing a save.
type Role string

const (
	// RoleAdmin may assign records to any agent.
	RoleAdmin Role = "admin"
	// RoleAgent may only own records themselves.
	RoleAgent Role = "agente"
)

// Actor is the authenticated user on whose behalf a save runs.
type Actor struct {
	// ID is the actor's own agent identifier.
	ID string `json:"id"`
	// Role is the actor's privilege level.
	Role Role `json:"role"`
}

// IsPrivileged reports whether the actor may assign ownership to others.
func (a Actor) IsPrivileged() bool {
	return a.Role == RoleAdmin
}

// ResolveOwner returns the agent that will own a record.
// A privileged actor keeps the requested agent; anyone else always owns
// the record themselves, whatever was requested.
func (a Actor) ResolveOwner(requested string) string {
	if a.IsPrivileged() {
		return requested
	}
	return a.ID
}

// CanAccess reports whether the actor may read a record owned by ownerID.
func (a Actor) CanAccess(ownerID string) bool {
	return a.IsPrivileged() || (a.ID != "" && a.ID == ownerID)
}

// State is a step of the save state machine.
type State string

const (
	StateIdle                State = "idle"
	StateValidating          State = "validating"
	StateUpsertingParent     State = "upserting_parent"
	StateReconcilingChildren State = "reconciling_children"
	// StateFailed means nothing was written.
	StateFailed State = "failed"
	// StatePartiallyFailed means the parent row is committed but its children may not match.
	StatePartiallyFailed State = "partially_failed"
	StateSucceeded       State = "succeeded"
)

// Policy decides what happens when deleting the previous children fails.
type Policy string

const (
	// PolicyWarn logs the failure and still inserts the new children.
	PolicyWarn Policy = "warn"
	// PolicyAbort stops the save before inserting.
	PolicyAbort Policy = "abort"
)

// ParsePolicy converts a configuration value into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyWarn, PolicyAbort:
		return p, nil
	case "":
		return PolicyWarn, nil
	default:
		return "", fmt.Errorf("unknown child delete failure policy %q", s)
	}
}

var (
	// ErrParentWrite is returned when the parent upsert fails.
	ErrParentWrite = errors.New("parent write failed")
	// ErrMissingParentID is returned when the store accepts the parent but reports no id.
	ErrMissingParentID = errors.New("store returned parent without id")
	// ErrChildDelete is returned when previous children could not be removed under PolicyAbort.
	ErrChildDelete = errors.New("child delete failed")
	// ErrChildInsert is returned when the new children could not be written.
	ErrChildInsert = errors.New("child insert failed")
)

// SaveError reports the terminal state a failed save stopped in.
type SaveError struct {
	// State is StateFailed or StatePartiallyFailed.
	State State
	// ParentID is set once the parent row was written under a known id.
	ParentID string
	Err      error
}

func (e *SaveError) Error() string {
	if e.ParentID != "" {
		return fmt.Sprintf("save %s (parent %s): %v", e.State, e.ParentID, e.Err)
	}
	return fmt.Sprintf("save %s: %v", e.State, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// StateOf returns the terminal state carried by err, or StateSucceeded for nil.
func StateOf(err error) State {
	if err == nil {
		return StateSucceeded
	}
	var se *SaveError
	if errors.As(err, &se) {
		return se.State
	}
	return StateFailed
}

// IsPartial reports whether err left a committed parent with inconsistent children.
func IsPartial(err error) bool {
	return StateOf(err) == StatePartiallyFailed
}

// Parent is a record that owns a set of dependent children.
// Implementations are pointer types so the engine can update them in place.
type Parent interface {
	// RecordID is the store identifier, empty before the first save.
	RecordID() string
	// OwnerID is the owning agent as requested by the form.
	OwnerID() string
	// SetOwner overwrites the owning agent.
	SetOwner(agentID string)
	// StripProjections clears read-only fields loaded from joins.
	StripProjections()
}

// Normalizer is implemented by children that clean their own fields before being written.
type Normalizer interface {
	Normalize()
}

// Store is the persistence port the engine drives.
type Store[P Parent, C any] interface {
	// UpsertParent creates the parent when it has no id, otherwise overwrites it,
	// and returns it with its id.
	UpsertParent(ctx context.Context, parent P) (P, error)
	// DeleteChildren removes every child of parentID. Removing nothing is not an error.
	DeleteChildren(ctx context.Context, parentID string) error
	// InsertChildren writes children as new rows stamped with parentID and agentID.
	InsertChildren(ctx context.Context, children []C, parentID, agentID string) error
}

// Result is returned by a successful save.
type Result[P Parent, C any] struct {
	// Parent is the row as the store wrote it, with store-set fields filled in.
	Parent P `json:"parent"`
	// ParentID is the assigned or confirmed parent id.
	ParentID string `json:"id"`
	// OwnerID is the agent the parent and children were stamped with.
	OwnerID string `json:"agente_id"`
	// Children is the in-memory list as given to Save.
	Children []C `json:"children"`
	// State is always StateSucceeded.
	State State `json:"state"`
	// Warnings lists soft failures tolerated under PolicyWarn.
	Warnings []string `json:"warnings,omitempty"`
}
