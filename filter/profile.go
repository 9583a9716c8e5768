package filter

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasfilter/oaserrors"
	"github.com/erraggy/oasfilter/parser"
)

// Profile is a saved selection, read from a YAML or JSON file:
//
//	include:
//	  - tag:users
//	  - GET /health
//	exclude:
//	  - ext:x-internal
//	strict: true
//	format: yaml
//	output: users-api.yaml
type Profile struct {
	// Include lists selector strings, see ParseSelector
	Include []string `yaml:"include" json:"include"`
	// Exclude lists selector strings removed from the inclusion
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	// Strict turns unresolved references into errors when set
	Strict *bool `yaml:"strict,omitempty" json:"strict,omitempty"`
	// Format is the output format: "json" or "yaml"
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	// Output is the output file path
	Output string `yaml:"output,omitempty" json:"output,omitempty"`

	// SourcePath is the file the profile was loaded from
	SourcePath string `yaml:"-" json:"-"`
}

var profileFields = map[string]bool{
	"include": true,
	"exclude": true,
	"strict":  true,
	"format":  true,
	"output":  true,
}

// LoadProfile reads and validates a profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "profile", Value: path, Message: "cannot read profile", Cause: err}
	}
	p, err := ParseProfile(data)
	if err != nil {
		var cerr *oaserrors.ConfigError
		if errors.As(err, &cerr) && cerr.Value == nil {
			cerr.Value = path
		}
		return nil, err
	}
	p.SourcePath = path
	return p, nil
}

// ParseProfile decodes and validates profile data. Unknown fields, invalid
// selectors and unknown formats are rejected with a *oaserrors.ConfigError.
func ParseProfile(data []byte) (*Profile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ConfigError{Option: "profile", Message: "profile is empty"}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ConfigError{Option: "profile", Message: "invalid YAML", Cause: err}
	}
	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil, &oaserrors.ConfigError{Option: "profile", Message: "profile must be a mapping"}
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key := doc.Content[i]
		if !profileFields[key.Value] {
			return nil, &oaserrors.ConfigError{
				Option:  "profile",
				Message: fmt.Sprintf("unknown field %q at line %d", key.Value, key.Line),
			}
		}
	}

	p := &Profile{}
	if err := doc.Decode(p); err != nil {
		return nil, &oaserrors.ConfigError{Option: "profile", Message: "invalid profile", Cause: err}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the selectors and the format.
func (p *Profile) Validate() error {
	if _, err := p.Selection(); err != nil {
		return err
	}
	if _, err := parser.ParseSourceFormat(p.Format); err != nil {
		return &oaserrors.ConfigError{Option: "profile.format", Value: p.Format, Message: "want json or yaml"}
	}
	return nil
}

// Selection parses the profile's include and exclude lists.
func (p *Profile) Selection() (*Selection, error) {
	return NewSelection(p.Include, p.Exclude)
}

// OutputFormat returns the profile's format, or SourceFormatUnknown when
// none is set.
func (p *Profile) OutputFormat() parser.SourceFormat {
	f, _ := parser.ParseSourceFormat(p.Format)
	return f
}
