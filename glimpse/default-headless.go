//go:build headless

package glimpse

// DefaultBinding returns the in-memory binding when built with the headless tag
func DefaultBinding() Binding {
	return NewHeadless()
}
