// Package guard detects domain values that were created as zero values instead of
// through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into value objects, entities and commands. Only the
// constructor sets it, so a zero value fails Validate.
//
// Example:
//
//	var ErrPalletIsNotConstructed = errors.New("pallet must be created via NewPallet")
//
//	type Pallet struct {
//	    id       string
//	    boxCount int
//	    guard    guard.ConstructorGuard
//	}
//
//	func (p *Pallet) Validate() error {
//	    return p.guard.Validate(ErrPalletIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
