package repository

// VersionRepository tracks the monotonic version marker bumped on every
// stock-affecting mutation, so independent views can detect change cheaply.
type VersionRepository interface {
	Current() (int64, error)
	// Bump increments the marker and returns the new value.
	Bump() (int64, error)
}
