package reactivity

// Get records the dependencies of an evaluation. Use Read for typed access.
type Get interface {
	// Any returns v unchanged unless it is reactive, in which case the
	// dependency is recorded and its current value returned.
	Any(v any) any

	track(dep anyNode)
}

// Read records r as a dependency of the running evaluation and returns its
// value.
func Read[T any](get Get, r ReadableLike[T]) T {
	rd := r.Readable()
	get.track(rd.node())
	return rd.Get()
}

func readAny(get Get, v any) any {
	p, ok := v.(nodeProvider)
	if !ok {
		return v
	}
	dep := p.node()
	get.track(dep)
	return dep.getAny()
}

type computeGet[T any] struct {
	self *node[T]
}

func (g *computeGet[T]) Any(v any) any { return readAny(g, v) }

func (g *computeGet[T]) track(dep anyNode) { g.self.addDep(dep) }

// Compute creates a readable whose value is fn's result. fn runs lazily on
// read, and again only after a dependency it read has changed.
func Compute[T any](rt *Runtime, fn func(get Get) T, cfg ...Config[T]) Readable[T] {
	var running bool
	n := newNode(rt, configOf(cfg), nil)
	n.computed = true
	get := &computeGet[T]{self: n}
	n.resolve = func(self *node[T]) T {
		if !running {
			running = true
			defer func() { running = false }()
			// only the outermost evaluation starts from an empty dependency set
			for _, dep := range self.deps.keys() {
				self.removeDep(dep)
			}
		}
		return fn(get)
	}
	return n
}
