package filter

import (
	"github.com/erraggy/oasfilter/internal/orderedset"
	"github.com/erraggy/oasfilter/jsonvalue"
	"github.com/erraggy/oasfilter/walker"
)

// VerifyClosure reports every "#/components/<bucket>/<name>" reference
// under doc's paths or components whose target is missing, once per
// bucket/name, in document order. A document produced by Reconstruct from
// a complete closure yields none.
func VerifyClosure(doc *jsonvalue.Object) ([]UnresolvedRef, error) {
	components, _ := doc.GetObject("components")
	seen := orderedset.New[string]()
	var missing []UnresolvedRef

	w := walker.New(walker.WithRefHandler(func(wc *walker.WalkContext, ref *walker.RefInfo) walker.Action {
		if !ref.IsComponent() {
			return walker.Continue
		}
		bucket, _ := components.GetObject(ref.Bucket)
		if bucket.Has(ref.Name) || !seen.Add(ref.Bucket+"/"+ref.Name) {
			return walker.Continue
		}
		missing = append(missing, UnresolvedRef{
			Ref:    ref.Ref,
			Bucket: ref.Bucket,
			Name:   ref.Name,
			Source: wc.JSONPath,
		})
		return walker.Continue
	}))

	for _, section := range []string{"paths", "components"} {
		v, ok := doc.Get(section)
		if !ok {
			continue
		}
		if err := w.WalkFrom(v, section); err != nil {
			return nil, err
		}
	}
	return missing, nil
}
