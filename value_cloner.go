package batchloader

// ValueCloner is an interface for cloning values.
// The loader uses it when one resolved value fans out to multiple receivers:
// receivers after the first get a clone so shared mutable values do not alias.
// The CloneValue method should return a deep copy of the input value.
type ValueCloner[V ValueConstraint] interface {
	CloneValue(V) V
}

// ValueClonerFunc is a function type that implements the ValueCloner interface.
type ValueClonerFunc[V ValueConstraint] func(v V) V

// CloneValue calls the function.
func (f ValueClonerFunc[V]) CloneValue(v V) V {
	return f(v)
}

// NopValueCloner is a value cloner that does not clone values.
// It is the loader default, and it preserves result identity: every receiver
// of a key observes the exact value the batch source produced.
type NopValueCloner[V ValueConstraint] struct{}

// CloneValue returns the input value.
func (NopValueCloner[V]) CloneValue(v V) V {
	return v
}

// DefaultValueCloner returns a cloner for the given value type.
// If the value type has a Clone or DeepCopy method, the returned cloner calls
// it; otherwise it falls back to NopValueCloner.
func DefaultValueCloner[V ValueConstraint]() ValueCloner[V] {
	var zero V
	return detectValueCloner[V](zero)
}

func detectValueCloner[V ValueConstraint](v any) ValueCloner[V] {
	type cloner interface {
		Clone() V
	}
	type deepCopier interface {
		DeepCopy() V
	}

	switch v.(type) {
	case cloner:
		return ValueClonerFunc[V](func(v V) V {
			var a any = v
			return a.(cloner).Clone()
		})

	case deepCopier:
		return ValueClonerFunc[V](func(v V) V {
			var a any = v
			return a.(deepCopier).DeepCopy()
		})

	default:
		return NopValueCloner[V]{}
	}
}
