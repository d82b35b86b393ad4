// Package repository holds the immutable plan dataset and the static
// reference fixtures rendered alongside it.
package repository

// Option applies a configuration option to the FixtureStore.
type Option func(*FixtureStore)

// WithDatasetPath loads the dataset from a YAML file instead of the
// embedded fixture.
func WithDatasetPath(path string) Option {
	return func(s *FixtureStore) {
		if path != "" {
			s.path = path
		}
	}
}

// WithDatasetBytes loads the dataset from an in-memory YAML document.
func WithDatasetBytes(doc []byte) Option {
	return func(s *FixtureStore) {
		if len(doc) > 0 {
			s.doc = doc
		}
	}
}
