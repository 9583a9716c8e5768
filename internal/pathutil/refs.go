package pathutil

import (
	"net/url"
	"strings"
)

// ComponentsPrefix is the prefix shared by every internal component reference.
const ComponentsPrefix = "#/components/"

// Component bucket names, in the order they are emitted.
const (
	BucketSchemas         = "schemas"
	BucketParameters      = "parameters"
	BucketResponses       = "responses"
	BucketRequestBodies   = "requestBodies"
	BucketSecuritySchemes = "securitySchemes"
	BucketHeaders         = "headers"
	BucketExamples        = "examples"
	BucketLinks           = "links"
	BucketCallbacks       = "callbacks"
)

// ComponentBuckets lists the recognized components buckets in canonical order.
var ComponentBuckets = []string{
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

// BucketIndex returns the position of bucket in ComponentBuckets, or -1.
func BucketIndex(bucket string) int {
	for i, b := range ComponentBuckets {
		if b == bucket {
			return i
		}
	}
	return -1
}

// ParseComponentRef splits "#/components/<bucket>/<name>" into bucket and
// name. It reports false for external refs, Swagger 2.0 refs, unknown
// buckets, empty names and refs pointing inside a component
// ("#/components/schemas/Pet/properties/id").
func ParseComponentRef(ref string) (bucket, name string, ok bool) {
	rest, found := strings.CutPrefix(ref, ComponentsPrefix)
	if !found {
		return "", "", false
	}
	bucket, token, found := strings.Cut(rest, "/")
	if !found || token == "" || strings.Contains(token, "/") {
		return "", "", false
	}
	if BucketIndex(bucket) < 0 {
		return "", "", false
	}
	name, ok = UnescapeToken(token)
	if !ok || name == "" {
		return "", "", false
	}
	return bucket, name, true
}

// ComponentRef builds "#/components/<bucket>/<name>", escaping name as a
// JSON Pointer reference token.
func ComponentRef(bucket, name string) string {
	return ComponentsPrefix + bucket + "/" + EscapeToken(name)
}

// IsLocalRef reports whether ref points into the same document.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, "#")
}

// EscapeToken escapes a JSON Pointer reference token (RFC 6901).
func EscapeToken(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// UnescapeToken decodes a URI-fragment JSON Pointer reference token:
// percent-encoding first, then "~1" and "~0". It reports false for a
// malformed percent escape or a "~" not followed by 0 or 1.
func UnescapeToken(token string) (string, bool) {
	if strings.Contains(token, "%") {
		decoded, err := url.PathUnescape(token)
		if err != nil {
			return "", false
		}
		token = decoded
	}
	if !strings.Contains(token, "~") {
		return token, true
	}
	var b strings.Builder
	b.Grow(len(token))
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(token) {
			return "", false
		}
		switch token[i+1] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", false
		}
		i++
	}
	return b.String(), true
}
