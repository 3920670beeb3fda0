package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ValidateFunc checks a parent and its children before anything is written.
type ValidateFunc[P Parent, C any] func(parent P, children []C) error

// Engine saves a parent record and fully replaces its children.
//
// The three store calls of a save are issued strictly one after the other and
// never concurrently. There is no rollback: once the parent is written a later
// failure leaves it committed and is reported as StatePartiallyFailed.
// Re-running the whole save repairs the children because delete-then-insert
// is idempotent.
type Engine[P Parent, C any] struct {
	store    Store[P, C]
	policy   Policy
	logger   *zap.Logger
	validate ValidateFunc[P, C]
}

// Option configures an Engine.
type Option[P Parent, C any] func(*Engine[P, C])

// WithValidation runs fn before the parent upsert; an error ends the save in StateFailed.
func WithValidation[P Parent, C any](fn ValidateFunc[P, C]) Option[P, C] {
	return func(e *Engine[P, C]) {
		e.validate = fn
	}
}

// NewEngine creates a new reconciliation engine.
func NewEngine[P Parent, C any](store Store[P, C], policy Policy, logger *zap.Logger, opts ...Option[P, C]) *Engine[P, C] {
	if policy == "" {
		policy = PolicyWarn
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine[P, C]{
		store:  store,
		policy: policy,
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the configured child delete failure policy.
func (e *Engine[P, C]) Policy() Policy {
	return e.policy
}

// Save persists parent and replaces its children with children.
// The parent is updated in place: its owner is resolved for actor and its
// read-only projections are cleared.
func (e *Engine[P, C]) Save(ctx context.Context, actor Actor, parent P, children []C) (*Result[P, C], error) {
	l := e.logger.With(zap.String("actor", actor.ID))
	state := StateIdle
	enter := func(next State) {
		l.Debug("Save state change", zap.String("from", string(state)), zap.String("to", string(next)))
		state = next
	}

	ownerID := actor.ResolveOwner(parent.OwnerID())
	parent.SetOwner(ownerID)
	parent.StripProjections()

	if e.validate != nil {
		enter(StateValidating)
		if err := e.validate(parent, children); err != nil {
			enter(StateFailed)
			return nil, &SaveError{State: StateFailed, Err: err}
		}
	}

	enter(StateUpsertingParent)
	saved, err := e.store.UpsertParent(ctx, parent)
	if err != nil {
		enter(StateFailed)
		l.Warn("Parent upsert failed", zap.String("parent", parent.RecordID()), zap.Error(err))
		return nil, &SaveError{State: StateFailed, Err: fmt.Errorf("%w: %w", ErrParentWrite, err)}
	}

	parentID := saved.RecordID()
	if parentID == "" {
		// The store accepted the write, so a row may exist that cannot be addressed.
		enter(StatePartiallyFailed)
		l.Error("Parent upsert returned no id")
		return nil, &SaveError{State: StatePartiallyFailed, Err: ErrMissingParentID}
	}
	l = l.With(zap.String("parent", parentID))

	enter(StateReconcilingChildren)
	var warnings []string
	if err := e.store.DeleteChildren(ctx, parentID); err != nil {
		if e.policy == PolicyAbort {
			enter(StatePartiallyFailed)
			l.Error("Child delete failed, aborting save", zap.Error(err))
			return nil, &SaveError{
				State:    StatePartiallyFailed,
				ParentID: parentID,
				Err:      fmt.Errorf("%w: %w", ErrChildDelete, err),
			}
		}
		// Previous children may survive next to the new ones.
		l.Warn("Child delete failed, continuing", zap.Error(err))
		warnings = append(warnings, fmt.Sprintf("%v: %v", ErrChildDelete, err))
	}

	if len(children) > 0 {
		batch := make([]C, len(children))
		copy(batch, children)
		for i := range batch {
			if n, ok := any(&batch[i]).(Normalizer); ok {
				n.Normalize()
			}
		}

		if err := e.store.InsertChildren(ctx, batch, parentID, ownerID); err != nil {
			enter(StatePartiallyFailed)
			l.Error("Child insert failed after parent write", zap.Error(err))
			return nil, &SaveError{
				State:    StatePartiallyFailed,
				ParentID: parentID,
				Err:      fmt.Errorf("%w: %w", ErrChildInsert, err),
			}
		}
	}

	enter(StateSucceeded)
	l.Info("Record saved", zap.Int("children", len(children)), zap.Int("warnings", len(warnings)))

	return &Result[P, C]{
		Parent:   saved,
		ParentID: parentID,
		OwnerID:  ownerID,
		Children: children,
		State:    StateSucceeded,
		Warnings: warnings,
	}, nil
}
