// Package affinity pins OS threads to logical cores.
package affinity

// Binder restricts the calling thread to a single logical core. Callers must hold
// the thread with runtime.LockOSThread for the binding to stay with their goroutine.
type Binder interface {
	Bind(core int) error
}

// BinderFunc adapts a function to Binder.
type BinderFunc func(core int) error

// Bind calls f(core).
func (f BinderFunc) Bind(core int) error {
	return f(core)
}
