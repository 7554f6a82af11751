// Package options implements the functional-option plumbing document.Encoder
// and stream.Writer/Reader use to configure themselves.
package options

// Option configures a value of type T, returning an error if the
// configuration is invalid (e.g. document.WithMaxInlineContainer rejecting
// a count outside the packed-container range). It is a plain function type
// rather than an interface wrapping a function: every option YABE defines
// is a one-line closure, so there is no call site that benefits from a
// separate wrapper type.
type Option[T any] func(T) error

// Apply runs opts against target in order, stopping at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt(target); err != nil {
			return err
		}
	}

	return nil
}
