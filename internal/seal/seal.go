// Package seal restricts implementations of automaton.Automaton to the
// backends that live in this module.
//
// The Automaton interface embeds Sealed. Because Sealed has an unexported
// method and this package is internal, code outside the module can neither
// name the method nor embed Backend, so the set of backends stays closed.
package seal

// Sealed is embedded by interfaces whose implementations must come from
// this module.
type Sealed interface {
	sealed()
}

// Backend is embedded by every automaton implementation in this module.
type Backend struct{}

func (Backend) sealed() {}
