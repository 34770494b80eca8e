package reactivity

// Derive maps dep through transform. A nil transform passes the value
// through, which requires T and U to be the same type.
func Derive[T, U any](rt *Runtime, dep ReadableLike[T], transform func(T) U, cfg ...Config[U]) Readable[U] {
	return Compute(rt, func(get Get) U {
		v := Read(get, dep)
		if transform == nil {
			return any(v).(U)
		}
		return transform(v)
	}, cfg...)
}
