package walker

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/erraggy/oasfilter/internal/httputil"
	"github.com/erraggy/oasfilter/internal/pathutil"
	"github.com/erraggy/oasfilter/jsonvalue"
	"github.com/erraggy/oasfilter/parser"
)

// DefaultMaxDepth is the default limit on path segments below the walk root.
const DefaultMaxDepth = jsonvalue.DefaultMaxDepth

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// NodeHandler is called for every value, before its children.
type NodeHandler func(wc *WalkContext, v jsonvalue.Value) Action

// ObjectHandler is called for every object, including reference objects.
type ObjectHandler func(wc *WalkContext, obj *jsonvalue.Object) Action

// ObjectPostHandler is called after an object's children have been walked.
// It is not called when the pre-visit handlers returned SkipChildren or Stop.
type ObjectPostHandler func(wc *WalkContext, obj *jsonvalue.Object)

// OperationHandler is called for each operation object under $.paths,
// after the ObjectHandler for the same node.
type OperationHandler func(wc *WalkContext, op *jsonvalue.Object) Action

// SkippedHandler is called when a value is not visited because it lies
// deeper than the configured maximum depth.
type SkippedHandler func(wc *WalkContext, v jsonvalue.Value)

// Walker traverses jsonvalue trees depth-first and calls handlers for each
// node. A Walker holds configuration only, so one instance may be reused,
// including from inside its own handlers.
type Walker struct {
	// Handlers
	onNode       NodeHandler
	onObject     ObjectHandler
	onObjectPost ObjectPostHandler
	onOperation  OperationHandler
	onRef        RefHandler
	onSkipped    SkippedHandler

	// Configuration
	maxDepth int
	userCtx  context.Context

	// Input for WalkWithOptions
	filePath *string
	parsed   *parser.ParseResult
}

// New creates a new Walker with the given options.
func New(opts ...Option) *Walker {
	w := &Walker{
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Option configures the Walker.
type Option func(*Walker)

// WithNodeHandler sets the handler called for every value.
func WithNodeHandler(fn NodeHandler) Option {
	return func(w *Walker) { w.onNode = fn }
}

// WithObjectHandler sets the handler called for every object.
func WithObjectHandler(fn ObjectHandler) Option {
	return func(w *Walker) { w.onObject = fn }
}

// WithObjectPostHandler sets the handler called after an object's children.
func WithObjectPostHandler(fn ObjectPostHandler) Option {
	return func(w *Walker) { w.onObjectPost = fn }
}

// WithOperationHandler sets the handler for operations under $.paths.
func WithOperationHandler(fn OperationHandler) Option {
	return func(w *Walker) { w.onOperation = fn }
}

// WithSkippedHandler sets the handler called when the depth limit cuts a
// subtree off.
func WithSkippedHandler(fn SkippedHandler) Option {
	return func(w *Walker) { w.onSkipped = fn }
}

// Walk traverses the parsed document and calls registered handlers for each node.
func Walk(result *parser.ParseResult, opts ...Option) error {
	if result == nil {
		return fmt.Errorf("walker: nil ParseResult")
	}
	if result.Document == nil {
		return fmt.Errorf("walker: nil Document in ParseResult")
	}
	return New(opts...).WalkFrom(result.Document)
}

// WalkValue traverses an arbitrary value, treating it as the document root.
func WalkValue(v jsonvalue.Value, opts ...Option) error {
	return New(opts...).WalkFrom(v)
}

// WalkFrom traverses v as if it were found in the document at the given
// object keys below the root. The keys seed WalkContext.JSONPath and the
// scope fields, so
//
//	w.WalkFrom(op, "paths", "/pets", "get")
//
// visits op with JSONPath "$.paths['/pets'].get" and Method "get".
//
// A Stop returned by a handler ends this call only; an enclosing WalkFrom
// continues unless its own handler also returns Stop.
func (w *Walker) WalkFrom(v jsonvalue.Value, keys ...string) error {
	s := &walkState{
		w:    w,
		path: pathutil.Acquire(),
		ctx:  w.userCtx,
	}
	defer s.path.Release()

	for _, k := range keys {
		s.push(k, -1)
	}
	s.base = len(keys)

	s.walk(v)
	return s.err
}

// walkState is the per-call traversal state.
type walkState struct {
	w       *Walker
	path    *pathutil.PathBuilder
	frames  []frame
	base    int
	ctx     context.Context
	stopped bool
	err     error
}

type frame struct {
	key   string
	index int // -1 for object members
}

func (s *walkState) push(key string, index int) {
	if index >= 0 {
		s.path.PushIndex(index)
		key = strconv.Itoa(index)
	} else {
		s.path.Push(key)
	}
	s.frames = append(s.frames, frame{key: key, index: index})
}

func (s *walkState) pop() {
	s.path.Pop()
	s.frames = s.frames[:len(s.frames)-1]
}

// handleAction processes the action returned by a handler.
// Returns true if walking should continue to children.
func (s *walkState) handleAction(action Action) bool {
	switch action {
	case Stop:
		s.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}

func (s *walkState) walk(v jsonvalue.Value) {
	if s.stopped {
		return
	}
	if s.ctx != nil {
		if err := s.ctx.Err(); err != nil {
			s.err = fmt.Errorf("walker: %w", err)
			s.stopped = true
			return
		}
	}

	if len(s.frames)-s.base > s.w.maxDepth {
		if s.w.onSkipped != nil {
			wc := s.buildContext()
			s.w.onSkipped(wc, v)
			releaseContext(wc)
		}
		return
	}

	wc := s.buildContext()
	descend := true
	if s.w.onNode != nil {
		descend = s.handleAction(s.w.onNode(wc, v))
	}

	switch val := v.(type) {
	case *jsonvalue.Object:
		if descend {
			descend = s.visitObject(wc, val)
		}
		if !descend || s.stopped {
			releaseContext(wc)
			return
		}
		for key, child := range val.All() {
			s.push(key, -1)
			s.walk(child)
			s.pop()
			if s.stopped {
				releaseContext(wc)
				return
			}
		}
		if s.w.onObjectPost != nil {
			s.w.onObjectPost(wc, val)
		}
	case jsonvalue.Array:
		if !descend {
			break
		}
		for i, elem := range val {
			s.push("", i)
			s.walk(elem)
			s.pop()
			if s.stopped {
				break
			}
		}
	}
	releaseContext(wc)
}

// visitObject runs the object, ref and operation handlers in that order.
func (s *walkState) visitObject(wc *WalkContext, obj *jsonvalue.Object) bool {
	if s.w.onObject != nil {
		if !s.handleAction(s.w.onObject(wc, obj)) {
			return false
		}
	}

	if s.w.onRef != nil {
		if ref, ok := obj.GetString("$ref"); ok {
			if !s.handleAction(s.w.onRef(wc, newRefInfo(ref, wc.JSONPath))) {
				return false
			}
		}
	}

	if s.w.onOperation != nil && s.atOperation() {
		if !s.handleAction(s.w.onOperation(wc, obj)) {
			return false
		}
	}
	return true
}

// atOperation reports whether the current node is $.paths[<path>].<method>.
func (s *walkState) atOperation() bool {
	return len(s.frames) == 3 &&
		s.frames[0].key == "paths" &&
		s.frames[2].index < 0 &&
		isOperationKey(s.frames[2].key)
}

func isOperationKey(key string) bool {
	return slices.Contains(httputil.CanonicalMethods, key)
}
