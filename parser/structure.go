package parser

import (
	"github.com/erraggy/oasfilter/internal/httputil"
	"github.com/erraggy/oasfilter/internal/pathutil"
	"github.com/erraggy/oasfilter/jsonvalue"
	"github.com/erraggy/oasfilter/oaserrors"
)

// Version marker keys.
const (
	VersionKeyOpenAPI = "openapi"
	VersionKeySwagger = "swagger"
)

// StructureInfo describes the version marker found by CheckStructure.
type StructureInfo struct {
	// VersionKey is "openapi" or "swagger"
	VersionKey string
	// Version is the marker value; non-string values are rendered as JSON
	Version string
	// Paths is the document's paths object
	Paths *jsonvalue.Object
}

// CheckStructure verifies the minimal document shape: an object root with
// an "openapi" or "swagger" key (openapi wins when both are present) and a
// "paths" object. It returns a *oaserrors.MalformedError otherwise.
func CheckStructure(root jsonvalue.Value) (*StructureInfo, error) {
	doc, ok := jsonvalue.AsObject(root)
	if !ok {
		return nil, &oaserrors.MalformedError{Message: "document root must be an object"}
	}

	info := &StructureInfo{}
	for _, key := range []string{VersionKeyOpenAPI, VersionKeySwagger} {
		v, found := doc.Get(key)
		if !found {
			continue
		}
		info.VersionKey = key
		info.Version = versionString(v)
		break
	}
	if info.VersionKey == "" {
		return nil, &oaserrors.MalformedError{
			Field:   "openapi",
			Message: "missing version marker: neither 'openapi' nor 'swagger' is present",
		}
	}

	paths, found := doc.Get("paths")
	if !found {
		return nil, &oaserrors.MalformedError{Field: "paths", Message: "missing 'paths'"}
	}
	pathsObj, ok := jsonvalue.AsObject(paths)
	if !ok {
		return nil, &oaserrors.MalformedError{
			Field:   "paths",
			Message: "'paths' must be an object, got " + paths.Kind().String(),
		}
	}
	info.Paths = pathsObj
	return info, nil
}

func versionString(v jsonvalue.Value) string {
	switch val := v.(type) {
	case jsonvalue.String:
		return string(val)
	case jsonvalue.Number:
		return string(val)
	default:
		out, err := jsonvalue.Marshal(v)
		if err != nil {
			return ""
		}
		return string(out)
	}
}

func computeStats(doc *jsonvalue.Object) DocumentStats {
	var stats DocumentStats
	paths, _ := doc.GetObject("paths")
	for _, item := range paths.All() {
		stats.PathCount++
		itemObj, ok := jsonvalue.AsObject(item)
		if !ok {
			continue
		}
		for _, method := range httputil.CanonicalMethods {
			if _, ok := itemObj.GetObject(method); ok {
				stats.OperationCount++
			}
		}
	}

	components, _ := doc.GetObject("components")
	for _, bucket := range pathutil.ComponentBuckets {
		if b, ok := components.GetObject(bucket); ok {
			stats.ComponentCount += b.Len()
		}
	}
	return stats
}
