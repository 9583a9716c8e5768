package walker

import "github.com/erraggy/oasfilter/jsonvalue"

// RefCollector holds references collected during a walk.
type RefCollector struct {
	// All contains every ref in traversal order.
	All []*RefInfo

	// Components contains refs of the form "#/components/<bucket>/<name>".
	Components []*RefInfo

	// Other contains every ref that is not a component ref: external
	// files, Swagger 2.0 definitions, refs into a component's interior.
	Other []*RefInfo

	// ByRef groups collected refs by their $ref string.
	ByRef map[string][]*RefInfo
}

// CollectRefs walks v and collects every $ref it contains, including refs
// nested beside a $ref in the same object.
func CollectRefs(v jsonvalue.Value, opts ...Option) (*RefCollector, error) {
	collector := &RefCollector{
		All:        make([]*RefInfo, 0),
		Components: make([]*RefInfo, 0),
		Other:      make([]*RefInfo, 0),
		ByRef:      make(map[string][]*RefInfo),
	}

	opts = append(opts, WithRefHandler(func(_ *WalkContext, ref *RefInfo) Action {
		collector.All = append(collector.All, ref)
		if ref.IsComponent() {
			collector.Components = append(collector.Components, ref)
		} else {
			collector.Other = append(collector.Other, ref)
		}
		collector.ByRef[ref.Ref] = append(collector.ByRef[ref.Ref], ref)
		return Continue
	}))

	if err := WalkValue(v, opts...); err != nil {
		return nil, err
	}
	return collector, nil
}

// OperationInfo describes an operation found under $.paths.
type OperationInfo struct {
	PathTemplate string
	Method       string
	JSONPath     string
	Operation    *jsonvalue.Object
}

// CollectOperations collects the operations under doc's $.paths in
// document order. Path items and operations that are not objects are
// skipped.
func CollectOperations(doc *jsonvalue.Object, opts ...Option) ([]*OperationInfo, error) {
	ops := make([]*OperationInfo, 0)
	paths, ok := doc.GetObject("paths")
	if !ok {
		return ops, nil
	}

	opts = append(opts,
		WithNodeHandler(func(wc *WalkContext, _ jsonvalue.Value) Action {
			// Nothing below a path item's non-method members can be an operation.
			if wc.Depth >= 3 && !wc.InOperationScope() {
				return SkipChildren
			}
			return Continue
		}),
		WithOperationHandler(func(wc *WalkContext, op *jsonvalue.Object) Action {
			ops = append(ops, &OperationInfo{
				PathTemplate: wc.PathTemplate,
				Method:       wc.Method,
				JSONPath:     wc.JSONPath,
				Operation:    op,
			})
			return SkipChildren
		}),
	)

	if err := New(opts...).WalkFrom(paths, "paths"); err != nil {
		return nil, err
	}
	return ops, nil
}
