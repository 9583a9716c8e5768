// Package options holds option validation shared by the parser, walker and
// filter packages.
package options

import (
	"strings"

	"github.com/erraggy/oasfilter/oaserrors"
)

// Source is one way of supplying input to an operation, named by the
// option function that sets it.
type Source struct {
	Name string
	Set  bool
}

// ExactlyOne returns a *oaserrors.ConfigError for option unless exactly one
// of sources is set. The message names the candidates when none is set and
// the conflicting ones when several are.
func ExactlyOne(option string, sources ...Source) error {
	var set, all []string
	for _, s := range sources {
		all = append(all, s.Name)
		if s.Set {
			set = append(set, s.Name)
		}
	}
	switch len(set) {
	case 1:
		return nil
	case 0:
		return &oaserrors.ConfigError{
			Option:  option,
			Message: "no input source: use one of " + strings.Join(all, ", "),
		}
	default:
		return &oaserrors.ConfigError{
			Option:  option,
			Message: "multiple input sources (" + strings.Join(set, ", ") + "): use only one",
		}
	}
}
