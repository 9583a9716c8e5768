package jsonvalue

import (
	"strconv"
	"strings"

	"github.com/erraggy/oasfilter/internal/pathutil"
)

// Lookup resolves a JSON Pointer against root. Both the plain form
// ("/components/schemas/User") and the URI fragment form
// ("#/components/schemas/User") are accepted. The empty pointer and "#"
// resolve to root itself.
func Lookup(root Value, pointer string) (Value, bool) {
	pointer = strings.TrimPrefix(pointer, "#")
	if pointer == "" {
		return root, root != nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, false
	}

	cur := root
	for _, raw := range strings.Split(pointer[1:], "/") {
		token, ok := pathutil.UnescapeToken(raw)
		if !ok {
			return nil, false
		}
		switch node := cur.(type) {
		case *Object:
			next, found := node.Get(token)
			if !found {
				return nil, false
			}
			cur = next
		case Array:
			i, err := strconv.Atoi(token)
			if err != nil || i < 0 || i >= len(node) || (len(token) > 1 && token[0] == '0') {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}
