package content

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/*.json
var fixtures embed.FS

// EmbeddedSource loads the content set compiled into the binary. This is
// the default source: the site ships with its content, the same way the
// original fixtures shipped with the bundle.
type EmbeddedSource struct{}

// NewEmbeddedSource returns a Source backed by the embedded fixtures.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

// Load reads and validates every embedded collection. A malformed fixture
// is a build artifact bug and fails the load outright.
func (s *EmbeddedSource) Load() (*Store, error) {
	store := &Store{}
	for _, name := range append(append([]string{}, Collections...), CollectionCompany) {
		data, err := fixtures.ReadFile("data/" + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("reading embedded collection %s: %w", name, err)
		}
		if err := decodeCollection(store, name, data, json.Unmarshal); err != nil {
			return nil, err
		}
	}
	if err := store.Validate(); err != nil {
		return nil, fmt.Errorf("validating embedded content: %w", err)
	}
	return store, nil
}

// decodeCollection unmarshals one collection's raw bytes into its slot on
// the store. unmarshal lets JSON and YAML sources share the plumbing.
func decodeCollection(store *Store, name string, data []byte, unmarshal func([]byte, interface{}) error) error {
	var err error
	switch name {
	case CollectionServices:
		err = unmarshal(data, &store.Services)
	case CollectionCaseStudies:
		err = unmarshal(data, &store.CaseStudies)
	case CollectionBlogPosts:
		err = unmarshal(data, &store.BlogPosts)
	case CollectionTestimonials:
		err = unmarshal(data, &store.Testimonials)
	case CollectionTeam:
		err = unmarshal(data, &store.Team)
	case CollectionCompany:
		err = unmarshal(data, &store.Company)
	default:
		return fmt.Errorf("unknown collection %q", name)
	}
	if err != nil {
		return fmt.Errorf("decoding collection %s: %w", name, err)
	}
	return nil
}
