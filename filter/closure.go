package filter

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasfilter/internal/orderedset"
	"github.com/erraggy/oasfilter/internal/pathutil"
	"github.com/erraggy/oasfilter/jsonvalue"
	"github.com/erraggy/oasfilter/oaserrors"
	"github.com/erraggy/oasfilter/parser"
	"github.com/erraggy/oasfilter/walker"
)

// Bucket identifies one of the nine components buckets.
type Bucket int

const (
	// BucketSchemas is components.schemas
	BucketSchemas Bucket = iota
	// BucketParameters is components.parameters
	BucketParameters
	// BucketResponses is components.responses
	BucketResponses
	// BucketRequestBodies is components.requestBodies
	BucketRequestBodies
	// BucketSecuritySchemes is components.securitySchemes
	BucketSecuritySchemes
	// BucketHeaders is components.headers
	BucketHeaders
	// BucketExamples is components.examples
	BucketExamples
	// BucketLinks is components.links
	BucketLinks
	// BucketCallbacks is components.callbacks
	BucketCallbacks

	bucketCount
)

// Buckets lists every bucket in the order components are emitted.
var Buckets = []Bucket{
	BucketSchemas,
	BucketParameters,
	BucketResponses,
	BucketRequestBodies,
	BucketSecuritySchemes,
	BucketHeaders,
	BucketExamples,
	BucketLinks,
	BucketCallbacks,
}

// String returns the bucket's key under components, e.g. "requestBodies".
func (b Bucket) String() string {
	if b < 0 || b >= bucketCount {
		return fmt.Sprintf("Bucket(%d)", int(b))
	}
	return pathutil.ComponentBuckets[b]
}

// ParseBucket converts a components key into a Bucket.
func ParseBucket(name string) (Bucket, bool) {
	i := pathutil.BucketIndex(name)
	if i < 0 {
		return 0, false
	}
	return Bucket(i), true
}

// UnresolvedRef is an internal component reference whose target does not
// exist in the document.
type UnresolvedRef struct {
	// Ref is the $ref value as written
	Ref string `json:"ref" yaml:"ref"`
	// Bucket is the bucket named by Ref
	Bucket string `json:"bucket" yaml:"bucket"`
	// Name is the unescaped component name named by Ref
	Name string `json:"name" yaml:"name"`
	// Source is the JSON path of the first object holding Ref
	Source string `json:"source" yaml:"source"`
}

// Closure is the transitive set of components reachable from a selection.
// Names are kept in discovery order so output is reproducible.
type Closure struct {
	sets    [bucketCount]orderedset.Set[string]
	visited orderedset.Set[string]

	// Unresolved lists internal references that named a missing component,
	// once per bucket/name, in discovery order.
	Unresolved []UnresolvedRef
}

// NewClosure returns an empty closure.
func NewClosure() *Closure {
	return &Closure{}
}

func (c *Closure) add(b Bucket, name string) bool {
	if !c.visited.Add(b.String() + "/" + name) {
		return false
	}
	c.sets[b].Add(name)
	return true
}

// Names returns the names collected for bucket b in discovery order.
func (c *Closure) Names(b Bucket) []string {
	if c == nil || b < 0 || b >= bucketCount {
		return nil
	}
	return c.sets[b].Items()
}

// Has reports whether the closure contains name in bucket b.
func (c *Closure) Has(b Bucket, name string) bool {
	if c == nil || b < 0 || b >= bucketCount {
		return false
	}
	return c.sets[b].Has(name)
}

// Len returns the total number of component names across all buckets.
func (c *Closure) Len() int {
	if c == nil {
		return 0
	}
	return c.visited.Len()
}

// IsEmpty reports whether the closure holds no component.
func (c *Closure) IsEmpty() bool {
	return c.Len() == 0
}

// Visited returns the visited markers, "bucket/name", in discovery order.
func (c *Closure) Visited() []string {
	if c == nil {
		return nil
	}
	return c.visited.Items()
}

// Value renders the closure as an object mapping each non-empty bucket to
// its names, plus "unresolved" when any reference failed to resolve.
func (c *Closure) Value() *jsonvalue.Object {
	out := jsonvalue.NewObject(len(Buckets) + 1)
	for _, b := range Buckets {
		names := c.Names(b)
		if len(names) == 0 {
			continue
		}
		arr := make(jsonvalue.Array, len(names))
		for i, n := range names {
			arr[i] = jsonvalue.String(n)
		}
		out.Set(b.String(), arr)
	}
	if c != nil && len(c.Unresolved) > 0 {
		arr := make(jsonvalue.Array, 0, len(c.Unresolved))
		for _, u := range c.Unresolved {
			item := jsonvalue.NewObject(4)
			item.Set("ref", jsonvalue.String(u.Ref))
			item.Set("bucket", jsonvalue.String(u.Bucket))
			item.Set("name", jsonvalue.String(u.Name))
			item.Set("source", jsonvalue.String(u.Source))
			arr = append(arr, item)
		}
		out.Set("unresolved", arr)
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (c *Closure) MarshalJSON() ([]byte, error) {
	return jsonvalue.Marshal(c.Value())
}

// MarshalYAML implements yaml.Marshaler.
func (c *Closure) MarshalYAML() (any, error) {
	return jsonvalue.ToYAMLNode(c.Value()), nil
}

// CollectReferences computes the transitive closure of internal component
// references reachable from the given endpoints. Each endpoint's operation
// is walked, followed by the path-level parameters of its path item (once
// per path). Only refs of the form "#/components/<bucket>/<name>" are
// followed; every other ref is left alone. A ref whose target is missing
// is recorded in Closure.Unresolved, or fails the collection with a
// *oaserrors.ReferenceError when WithStrictRefs(true) is given.
//
// Input-source options are ignored.
func CollectReferences(doc *jsonvalue.Object, endpoints []*Endpoint, opts ...Option) (*Closure, error) {
	cfg, err := applyConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("filter: invalid options: %w", err)
	}

	c := newCollector(doc, cfg)
	if err := c.collect(endpoints); err != nil {
		return nil, err
	}

	c.log.Debug("collected references",
		"endpoints", len(endpoints),
		"components", c.closure.Len(),
		"unresolved", len(c.closure.Unresolved),
	)
	return c.closure, nil
}

// collector is the mutable state threaded through one closure computation.
type collector struct {
	doc        *jsonvalue.Object
	components *jsonvalue.Object
	closure    *Closure
	unresolved orderedset.Set[string]
	strict     bool
	log        parser.Logger
	walker     *walker.Walker
	err        error
}

func newCollector(doc *jsonvalue.Object, cfg *filterConfig) *collector {
	c := &collector{
		doc:     doc,
		closure: NewClosure(),
		strict:  cfg.strict,
		log:     cfg.log(),
	}
	c.components, _ = doc.GetObject("components")
	c.walker = walker.New(
		walker.WithRefHandler(c.onRef),
		walker.WithSkippedHandler(c.onSkipped),
	)
	return c
}

func (c *collector) collect(endpoints []*Endpoint) error {
	paths, _ := c.doc.GetObject("paths")
	seededParams := orderedset.New[string]()

	for _, ep := range endpoints {
		item, ok := paths.GetObject(ep.Path)
		if !ok {
			c.log.Warn("selected path not found", "path", ep.Path)
			continue
		}

		method := strings.ToLower(ep.Method)
		op, ok := item.GetObject(method)
		if !ok {
			c.log.Warn("selected operation not found", "endpoint", ep.Key())
			continue
		}
		if err := c.walk(op, "paths", ep.Path, method); err != nil {
			return err
		}

		if !seededParams.Add(ep.Path) {
			continue
		}
		if params, ok := item.Get("parameters"); ok {
			if err := c.walk(params, "paths", ep.Path, "parameters"); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *collector) walk(v jsonvalue.Value, keys ...string) error {
	if err := c.walker.WalkFrom(v, keys...); err != nil {
		return err
	}
	return c.err
}

// onRef follows component refs. Ref objects are never descended into:
// their siblings are not part of the closure.
func (c *collector) onRef(wc *walker.WalkContext, ref *walker.RefInfo) walker.Action {
	if c.err != nil {
		return walker.Stop
	}
	if !ref.IsComponent() {
		return walker.SkipChildren
	}

	bucket, _ := ParseBucket(ref.Bucket)
	if c.closure.Has(bucket, ref.Name) {
		return walker.SkipChildren
	}

	target, ok := c.lookup(ref.Bucket, ref.Name)
	if !ok {
		c.recordUnresolved(wc, ref)
		if c.strict {
			c.err = &oaserrors.ReferenceError{
				Ref:     ref.Ref,
				Bucket:  ref.Bucket,
				Name:    ref.Name,
				Source:  wc.JSONPath,
				Message: "component not found",
			}
			return walker.Stop
		}
		return walker.SkipChildren
	}

	c.closure.add(bucket, ref.Name)
	if err := c.walker.WalkFrom(target, "components", ref.Bucket, ref.Name); err != nil && c.err == nil {
		c.err = err
	}
	if c.err != nil {
		return walker.Stop
	}
	return walker.SkipChildren
}

// onSkipped fails the collection when the walker's depth limit cuts a
// subtree, since refs below the cut would be missing from the closure.
// Documents decoded with the default depth limit never reach it.
func (c *collector) onSkipped(wc *walker.WalkContext, _ jsonvalue.Value) {
	if c.err != nil {
		return
	}
	c.err = &oaserrors.ResourceLimitError{
		ResourceType: "nesting_depth",
		Limit:        walker.DefaultMaxDepth,
		Message:      "references below " + wc.JSONPath + " not collected",
	}
}

func (c *collector) lookup(bucket, name string) (jsonvalue.Value, bool) {
	b, ok := c.components.GetObject(bucket)
	if !ok {
		return nil, false
	}
	return b.Get(name)
}

func (c *collector) recordUnresolved(wc *walker.WalkContext, ref *walker.RefInfo) {
	if !c.unresolved.Add(ref.Bucket + "/" + ref.Name) {
		return
	}
	c.closure.Unresolved = append(c.closure.Unresolved, UnresolvedRef{
		Ref:    ref.Ref,
		Bucket: ref.Bucket,
		Name:   ref.Name,
		Source: wc.JSONPath,
	})
	c.log.Warn("unresolved reference", "ref", ref.Ref, "source", wc.JSONPath)
}
