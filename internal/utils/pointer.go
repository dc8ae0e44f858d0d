package utils

// Ptr returns a pointer to v, for optional request fields such as
// temperature.
func Ptr[T any](v T) *T {
	return &v
}
