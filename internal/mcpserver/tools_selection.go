package mcpserver

import (
	"github.com/erraggy/oasfilter/filter"
)

// buildSelection combines the select and exclude selectors of a request
// with the rules of the named profile. It also returns the loaded profile,
// which is nil when none was named.
func buildSelection(include, exclude []string, profilePath string) (*filter.Selection, *filter.Profile, error) {
	sel, err := filter.NewSelection(include, exclude)
	if err != nil {
		return nil, nil, err
	}
	if profilePath == "" {
		return sel, nil, nil
	}
	profile, err := filter.LoadProfile(profilePath)
	if err != nil {
		return nil, nil, err
	}
	ps, err := profile.Selection()
	if err != nil {
		return nil, nil, err
	}
	sel.Merge(ps)
	return sel, profile, nil
}

// strictOption resolves the strict setting: an explicit request value wins,
// then the profile's, then OASFILTER_STRICT_REFS.
func strictOption(requested *bool, profile *filter.Profile) filter.Option {
	switch {
	case requested != nil:
		return filter.WithStrictRefs(*requested)
	case profile != nil && profile.Strict != nil:
		return filter.WithStrictRefs(*profile.Strict)
	default:
		return filter.WithStrictRefs(cfg.StrictRefs)
	}
}
