package jsonvalue

// DefaultMaxDepth is the default limit on array and object nesting.
const DefaultMaxDepth = 1000

// DefaultMaxAliasNodes is the default limit on nodes produced by expanding
// YAML aliases.
const DefaultMaxAliasNodes = 1_000_000

// decodeConfig holds decode options.
type decodeConfig struct {
	maxDepth      int
	maxAliasNodes int
}

// DecodeOption configures DecodeJSON and DecodeYAML.
type DecodeOption func(*decodeConfig)

// WithMaxDepth limits array and object nesting. Values <= 0 select
// DefaultMaxDepth.
func WithMaxDepth(depth int) DecodeOption {
	return func(c *decodeConfig) { c.maxDepth = depth }
}

// WithMaxAliasNodes limits the number of nodes YAML alias expansion may
// produce. Values <= 0 select DefaultMaxAliasNodes.
func WithMaxAliasNodes(n int) DecodeOption {
	return func(c *decodeConfig) { c.maxAliasNodes = n }
}

func applyDecodeOptions(opts []DecodeOption) decodeConfig {
	var c decodeConfig
	for _, opt := range opts {
		opt(&c)
	}
	if c.maxDepth <= 0 {
		c.maxDepth = DefaultMaxDepth
	}
	if c.maxAliasNodes <= 0 {
		c.maxAliasNodes = DefaultMaxAliasNodes
	}
	return c
}
