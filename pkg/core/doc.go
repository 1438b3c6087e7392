// Package core provides the widget and element framework that lazy sections
// are built on.
//
// Widget is an immutable description of part of the UI. Element is the
// instantiation of a Widget at a particular location in the tree and owns
// its lifecycle: Mount, Update, Unmount. Stateful widgets keep mutable state
// in a State whose Dispose runs when the element unmounts, which is where
// scoped resources such as visibility observers are released.
//
// For widgets that need mutable state, embed StateBase in your state struct:
//
//	type sectionState struct {
//	    core.StateBase
//	    loaded *core.Managed[bool]
//	}
//
//	func (s *sectionState) InitState() {
//	    s.loaded = core.NewManaged(s, false)
//	}
//
// UseController ties any Disposable to the state's lifetime.
package core
