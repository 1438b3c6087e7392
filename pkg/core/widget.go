package core

// Widget is an immutable description of part of the UI.
type Widget interface {
	CreateElement() Element
	Key() any
}

// StatelessWidget builds its subtree from configuration alone.
type StatelessWidget interface {
	Widget
	Build(ctx BuildContext) Widget
}

// StatefulWidget owns a State that persists across rebuilds.
type StatefulWidget interface {
	Widget
	CreateState() State
}

// State holds mutable data for a StatefulWidget.
type State interface {
	InitState()
	Build(ctx BuildContext) Widget
	SetState(fn func())
	Dispose()
	DidUpdateWidget(oldWidget StatefulWidget)
}

// BuildContext locates a widget in the tree.
type BuildContext interface {
	Widget() Widget
	FindAncestor(predicate func(Element) bool) Element
}

// Element is the instantiation of a Widget in the tree.
type Element interface {
	BuildContext
	Mount(parent Element, slot any)
	Update(newWidget Widget)
	Unmount()
	RebuildIfNeeded()
	MarkNeedsBuild()
	Depth() int
	VisitChildren(visitor func(Element) bool)
}

// Disposable is a resource released when its owning state is disposed.
type Disposable interface {
	Dispose()
}

// StatelessBase provides default CreateElement and Key implementations for
// stateless widgets.
type StatelessBase struct{}

// CreateElement returns a new StatelessElement.
func (StatelessBase) CreateElement() Element { return NewStatelessElement() }

// Key returns nil (no key).
func (StatelessBase) Key() any { return nil }

// StatefulBase provides default CreateElement and Key implementations for
// stateful widgets.
type StatefulBase struct{}

// CreateElement returns a new StatefulElement.
func (StatefulBase) CreateElement() Element { return NewStatefulElement() }

// Key returns nil (no key).
func (StatefulBase) Key() any { return nil }
