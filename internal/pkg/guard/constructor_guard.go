// Package guard provides ConstructorGuard, a marker that lets value objects and
// entities tell a constructor-built instance apart from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into domain types that must only be created via their
// constructors. The zero value reports itself as not constructed.
//
// Example usage:
//
//	var ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch")
//
//	type Batch struct {
//	    orders []*order.Order
//	    guard  guard.ConstructorGuard
//	}
//
//	func (b *Batch) Validate() error {
//	    return b.guard.Validate(ErrBatchIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard was not created via NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}

	if !g.isConstructed {
		return validationError
	}

	return nil
}
