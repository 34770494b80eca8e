package reactivity

//go:generate go run ./cmd/codegen --count 8

// Combine reads every dependency and hands the values to transform. With a
// nil transform the value slice itself is the result, so U must be []T.
func Combine[T, U any](rt *Runtime, deps []ReadableLike[T], transform func(values []T) U, cfg ...Config[U]) Readable[U] {
	return Compute(rt, func(get Get) U {
		values := make([]T, len(deps))
		for i, dep := range deps {
			values[i] = Read(get, dep)
		}
		if transform == nil {
			return any(values).(U)
		}
		return transform(values)
	}, cfg...)
}
