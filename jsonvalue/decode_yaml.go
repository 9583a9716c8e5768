package jsonvalue

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasfilter/oaserrors"
)

// yamlLineRe extracts the line reported in a yaml error message.
var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// DecodeYAML parses the first YAML document in data. Mapping keys are
// converted to strings, aliases are expanded and merge keys are applied.
func DecodeYAML(data []byte, opts ...DecodeOption) (Value, error) {
	cfg := applyDecodeOptions(opts)

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		perr := &oaserrors.ParseError{Format: "yaml", Message: "invalid YAML", Cause: err}
		if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
			perr.Line, _ = strconv.Atoi(m[1])
		}
		return nil, perr
	}
	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		return nil, &oaserrors.ParseError{Format: "yaml", Message: "empty document"}
	}

	c := &yamlConverter{cfg: cfg}
	return c.convert(&root, 0, false)
}

type yamlConverter struct {
	cfg        decodeConfig
	aliasNodes int
}

func (c *yamlConverter) convert(n *yaml.Node, depth int, viaAlias bool) (Value, error) {
	if viaAlias {
		c.aliasNodes++
		if c.aliasNodes > c.cfg.maxAliasNodes {
			return nil, &oaserrors.ResourceLimitError{
				ResourceType: "alias_nodes",
				Limit:        int64(c.cfg.maxAliasNodes),
				Message:      "YAML alias expansion exceeds the configured limit",
			}
		}
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return c.convert(n.Content[0], depth, viaAlias)
	case yaml.AliasNode:
		if n.Alias == nil {
			return Null{}, nil
		}
		return c.convert(n.Alias, depth, true)
	case yaml.ScalarNode:
		return scalarValue(n)
	}

	depth++
	if depth > c.cfg.maxDepth {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "nesting_depth",
			Limit:        int64(c.cfg.maxDepth),
			Actual:       int64(depth),
			Message:      fmt.Sprintf("document nesting exceeds the configured limit at line %d", n.Line),
		}
	}

	switch n.Kind {
	case yaml.SequenceNode:
		arr := make(Array, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := c.convert(child, depth, viaAlias)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.MappingNode:
		return c.mapping(n, depth, viaAlias)
	}
	return nil, &oaserrors.ParseError{Format: "yaml", Line: n.Line, Column: n.Column, Message: "unsupported YAML node"}
}

func (c *yamlConverter) mapping(n *yaml.Node, depth int, viaAlias bool) (*Object, error) {
	obj := NewObject(len(n.Content) / 2)

	// Explicit keys take precedence over merged ones wherever they appear.
	explicit := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if !isMergeKey(n.Content[i]) {
			explicit[n.Content[i].Value] = true
		}
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if isMergeKey(keyNode) {
			if err := c.merge(obj, valNode, explicit, depth, viaAlias); err != nil {
				return nil, err
			}
			continue
		}
		key, err := mappingKey(keyNode)
		if err != nil {
			return nil, err
		}
		v, err := c.convert(valNode, depth, viaAlias)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	return obj, nil
}

// merge applies a "<<" value, which is a mapping or a sequence of mappings.
// Earlier mappings in a sequence win over later ones.
func (c *yamlConverter) merge(dst *Object, src *yaml.Node, explicit map[string]bool, depth int, viaAlias bool) error {
	var sources []*yaml.Node
	switch resolveAlias(src).Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{src}
	case yaml.SequenceNode:
		sources = resolveAlias(src).Content
	default:
		return &oaserrors.ParseError{Format: "yaml", Line: src.Line, Column: src.Column, Message: "merge value must be a mapping or a sequence of mappings"}
	}

	for _, s := range sources {
		if resolveAlias(s).Kind != yaml.MappingNode {
			return &oaserrors.ParseError{Format: "yaml", Line: s.Line, Column: s.Column, Message: "merge value must be a mapping or a sequence of mappings"}
		}
		v, err := c.convert(s, depth-1, viaAlias)
		if err != nil {
			return err
		}
		for k, child := range v.(*Object).All() {
			if explicit[k] || dst.Has(k) {
				continue
			}
			dst.Set(k, child)
		}
	}
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!merge"
}

func mappingKey(n *yaml.Node) (string, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.ScalarNode {
		return "", &oaserrors.ParseError{Format: "yaml", Line: n.Line, Column: n.Column, Message: "mapping keys must be scalars"}
	}
	return n.Value, nil
}

func scalarValue(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, &oaserrors.ParseError{Format: "yaml", Line: n.Line, Column: n.Column, Message: "invalid boolean", Cause: err}
		}
		return Bool(b), nil
	case "!!int", "!!float":
		return numberValue(n)
	default:
		// !!str, !!timestamp, !!binary and custom tags all keep their text.
		return String(n.Value), nil
	}
}

// numberValue keeps literals that are already valid JSON numbers and
// normalizes YAML-only forms (0x1F, 0o17, 1_000, +1). Infinity and NaN have
// no JSON form and become strings.
func numberValue(n *yaml.Node) (Value, error) {
	lit := n.Value
	if isJSONNumber(lit) {
		return Number(lit), nil
	}
	if n.ShortTag() == "!!int" {
		var i int64
		if err := n.Decode(&i); err == nil {
			return Number(strconv.FormatInt(i, 10)), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return Number(strconv.FormatUint(u, 10)), nil
		}
	}
	var f float64
	if err := n.Decode(&f); err != nil {
		return nil, &oaserrors.ParseError{Format: "yaml", Line: n.Line, Column: n.Column, Message: "invalid number " + strconv.Quote(lit), Cause: err}
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return String(lit), nil
	}
	return Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

func isJSONNumber(s string) bool {
	if s == "" || strings.ContainsAny(s, "_xXoO") {
		return false
	}
	if s[0] != '-' && (s[0] < '0' || s[0] > '9') {
		return false
	}
	return json.Valid([]byte(s))
}
