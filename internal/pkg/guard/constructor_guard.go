// Package guard holds the constructor guard used by commands, queries, and value
// objects to reject zero values that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes no
// error of its own.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built by its constructor. Embed it as a
// private field, set it with NewConstructorGuard, and check it in Validate:
//
//	type AdvanceTrackingCommand struct {
//	    code  kernel.OrderCode
//	    guard guard.ConstructorGuard
//	}
//
//	func (c AdvanceTrackingCommand) Validate() error {
//	    return c.guard.Validate(ErrAdvanceTrackingCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil) if
// the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
