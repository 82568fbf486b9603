// Package board holds the in-memory workspace state and the pure functions
// that compute the next state for every user action.
//
// None of the functions mutate their input State or the slices inside it;
// each returns a new State that shares untouched records with the old one.
// Operations on ids that do not exist are no-ops. Replacement is by id with
// last-write-wins semantics, there is no versioning or merging.
package board
