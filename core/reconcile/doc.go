// Package reconcile implements the save protocol for a parent record and the
// dependent records it owns.
//
// A save upserts the parent, deletes every child stored under its id and
// inserts the in-memory list afresh. After a successful save the stored
// children are exactly the list that was passed in: no stale rows survive and
// no duplicates accumulate, whether it is the first save or the hundredth.
//
// # Ownership
//
// The owning agent is resolved from the Actor before anything is written.
// Privileged actors keep the agent chosen on the form; everyone else always
// owns the record themselves.
//
// # Failure States
//
//   - StateFailed: validation or the parent upsert failed, nothing was written.
//   - StatePartiallyFailed: the parent is committed, the children may not match.
//
// Deleting the previous children is a soft failure under PolicyWarn (logged,
// the save continues) and a hard one under PolicyAbort.
//
// # Store
//
// The engine only talks to a Store: UpsertParent, DeleteChildren and
// InsertChildren. feature/clients provides the gorm implementation.
package reconcile
