package filter

import (
	"fmt"
	"path"
	"strings"

	"github.com/erraggy/oasfilter/internal/httputil"
	"github.com/erraggy/oasfilter/jsonvalue"
	"github.com/erraggy/oasfilter/oaserrors"
)

// SelectorKind identifies what a Selector matches on.
type SelectorKind int

const (
	// KindAll matches every endpoint
	KindAll SelectorKind = iota
	// KindEndpoint matches one "METHOD /path" pair
	KindEndpoint
	// KindOperationID matches an operationId
	KindOperationID
	// KindTag matches endpoints carrying a tag
	KindTag
	// KindPath matches path templates against a glob
	KindPath
	// KindMethod matches an HTTP method
	KindMethod
	// KindExtension matches on the operation's x- members
	KindExtension
)

// String returns the selector prefix for the kind.
func (k SelectorKind) String() string {
	switch k {
	case KindAll:
		return "all"
	case KindEndpoint:
		return "endpoint"
	case KindOperationID:
		return "op"
	case KindTag:
		return "tag"
	case KindPath:
		return "path"
	case KindMethod:
		return "method"
	case KindExtension:
		return "ext"
	default:
		return fmt.Sprintf("SelectorKind(%d)", int(k))
	}
}

// Selector is one selection rule. Build it with ParseSelector or one of the
// Select* constructors; the zero value selects everything.
type Selector struct {
	Kind SelectorKind
	// Value is the rule argument: the operationId, tag, pattern, method or
	// extension expression. For KindEndpoint it is the path.
	Value string
	// Method is the uppercase method of a KindEndpoint or KindMethod rule
	Method string

	segments []string
	ext      extExpr
}

// ParseSelector parses the string form of a selector:
//
//	all                   every endpoint
//	GET /users            one endpoint (method is case-insensitive)
//	op:listUsers          operationId
//	tag:users             tag
//	path:/users/**        path glob; * is one segment, ** any number
//	method:delete         HTTP method
//	ext:x-public          extension filter, see below
//
// An extension filter is a list of clauses joined by "," (or) and "+"
// (and), with "+" binding tighter. A clause is "x-key" (present and not
// false or null), "!x-key" (the opposite), "x-key=value" or
// "x-key!=value" (absent counts as unequal). Values compare against the
// extension rendered as text: strings as-is, everything else as JSON.
func ParseSelector(s string) (Selector, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Selector{}, selectorError(s, "empty selector")
	}
	if strings.EqualFold(raw, "all") {
		return SelectAllEndpoints(), nil
	}

	prefix, arg, found := strings.Cut(raw, ":")
	if found && !strings.ContainsAny(prefix, " /") {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			return Selector{}, selectorError(s, "missing value after "+prefix+":")
		}
		switch strings.ToLower(prefix) {
		case "op", "operation", "operationid":
			return SelectOperationID(arg), nil
		case "tag":
			return SelectTag(arg), nil
		case "path":
			return SelectPath(arg)
		case "method":
			return SelectMethod(arg)
		case "ext":
			return SelectExtension(arg)
		default:
			return Selector{}, selectorError(s, "unknown selector kind "+prefix)
		}
	}

	method, p, found := strings.Cut(raw, " ")
	p = strings.TrimSpace(p)
	if !found || !strings.HasPrefix(p, "/") {
		return Selector{}, selectorError(s, `want "all", "METHOD /path" or a kind prefix (op:, tag:, path:, method:, ext:)`)
	}
	return SelectEndpoint(method, p)
}

// MustParseSelector is like ParseSelector but panics on error.
func MustParseSelector(s string) Selector {
	sel, err := ParseSelector(s)
	if err != nil {
		panic(err)
	}
	return sel
}

func selectorError(s, msg string) error {
	return &oaserrors.ConfigError{Option: "selector", Value: s, Message: msg}
}

// SelectAllEndpoints returns a selector matching every endpoint.
func SelectAllEndpoints() Selector {
	return Selector{Kind: KindAll}
}

// SelectEndpoint returns a selector for one method and path.
func SelectEndpoint(method, p string) (Selector, error) {
	if !httputil.IsMethod(method) {
		return Selector{}, selectorError(method+" "+p, "unknown HTTP method "+method)
	}
	return Selector{Kind: KindEndpoint, Method: strings.ToUpper(method), Value: p}, nil
}

// SelectOperationID returns a selector for an operationId.
func SelectOperationID(id string) Selector {
	return Selector{Kind: KindOperationID, Value: id}
}

// SelectTag returns a selector for a tag.
func SelectTag(tag string) Selector {
	return Selector{Kind: KindTag, Value: tag}
}

// SelectMethod returns a selector for an HTTP method.
func SelectMethod(method string) (Selector, error) {
	if !httputil.IsMethod(method) {
		return Selector{}, selectorError("method:"+method, "unknown HTTP method "+method)
	}
	m := strings.ToUpper(method)
	return Selector{Kind: KindMethod, Method: m, Value: m}, nil
}

// SelectPath returns a selector matching path templates against pattern.
// Segments are matched with path.Match, so "*" and "?" work within a
// segment; a "**" segment matches zero or more segments.
func SelectPath(pattern string) (Selector, error) {
	if !strings.HasPrefix(pattern, "/") {
		return Selector{}, selectorError("path:"+pattern, "path pattern must start with /")
	}
	segments := strings.Split(pattern, "/")[1:]
	for _, seg := range segments {
		if seg == "**" {
			continue
		}
		if _, err := path.Match(seg, ""); err != nil {
			return Selector{}, selectorError("path:"+pattern, fmt.Sprintf("bad segment %q: %v", seg, err))
		}
	}
	return Selector{Kind: KindPath, Value: pattern, segments: segments}, nil
}

// SelectExtension returns a selector for an extension filter expression.
func SelectExtension(expr string) (Selector, error) {
	parsed, err := parseExtExpr(expr)
	if err != nil {
		return Selector{}, selectorError("ext:"+expr, err.Error())
	}
	return Selector{Kind: KindExtension, Value: expr, ext: parsed}, nil
}

// Matches reports whether ep satisfies the selector.
func (s Selector) Matches(ep *Endpoint) bool {
	switch s.Kind {
	case KindAll:
		return true
	case KindEndpoint:
		return ep.Method == s.Method && ep.Path == s.Value
	case KindOperationID:
		return ep.OperationID != "" && ep.OperationID == s.Value
	case KindTag:
		return ep.HasTag(s.Value)
	case KindPath:
		return matchSegments(s.segments, strings.Split(ep.Path, "/")[1:])
	case KindMethod:
		return ep.Method == s.Method
	case KindExtension:
		return s.ext.matches(ep.Extensions)
	default:
		return false
	}
}

// String returns the selector in the form ParseSelector accepts.
func (s Selector) String() string {
	switch s.Kind {
	case KindAll:
		return "all"
	case KindEndpoint:
		return s.Method + " " + s.Value
	default:
		return s.Kind.String() + ":" + s.Value
	}
}

// matchSegments matches path segments against glob segments.
func matchSegments(pattern, segments []string) bool {
	if len(pattern) == 0 {
		return len(segments) == 0
	}
	if pattern[0] == "**" {
		for i := 0; i <= len(segments); i++ {
			if matchSegments(pattern[1:], segments[i:]) {
				return true
			}
		}
		return false
	}
	if len(segments) == 0 {
		return false
	}
	if ok, _ := path.Match(pattern[0], segments[0]); !ok {
		return false
	}
	return matchSegments(pattern[1:], segments[1:])
}

// extExpr is a disjunction of conjunctions of extension clauses.
type extExpr [][]extClause

type extOp int

const (
	extPresent extOp = iota
	extAbsent
	extEqual
	extNotEqual
)

type extClause struct {
	key   string
	op    extOp
	value string
}

func parseExtExpr(expr string) (extExpr, error) {
	var out extExpr
	for _, group := range strings.Split(expr, ",") {
		var and []extClause
		for _, term := range strings.Split(group, "+") {
			clause, err := parseExtClause(strings.TrimSpace(term))
			if err != nil {
				return nil, err
			}
			and = append(and, clause)
		}
		out = append(out, and)
	}
	return out, nil
}

func parseExtClause(term string) (extClause, error) {
	var c extClause
	switch {
	case strings.HasPrefix(term, "!"):
		c.key, c.op = strings.TrimSpace(term[1:]), extAbsent
	case strings.Contains(term, "!="):
		key, value, _ := strings.Cut(term, "!=")
		c.key, c.op, c.value = strings.TrimSpace(key), extNotEqual, strings.TrimSpace(value)
	case strings.Contains(term, "="):
		key, value, _ := strings.Cut(term, "=")
		c.key, c.op, c.value = strings.TrimSpace(key), extEqual, strings.TrimSpace(value)
	default:
		c.key, c.op = term, extPresent
	}
	if c.key == "" {
		return c, fmt.Errorf("empty extension clause in %q", term)
	}
	if !strings.HasPrefix(c.key, "x-") {
		return c, fmt.Errorf("extension key %q must start with x-", c.key)
	}
	return c, nil
}

func (e extExpr) matches(ext *jsonvalue.Object) bool {
	for _, and := range e {
		ok := true
		for _, c := range and {
			if !c.matches(ext) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func (c extClause) matches(ext *jsonvalue.Object) bool {
	v, found := ext.Get(c.key)
	switch c.op {
	case extPresent:
		return found && truthy(v)
	case extAbsent:
		return !found || !truthy(v)
	case extEqual:
		return found && extText(v) == c.value
	case extNotEqual:
		return !found || extText(v) != c.value
	default:
		return false
	}
}

func truthy(v jsonvalue.Value) bool {
	switch val := v.(type) {
	case jsonvalue.Null:
		return false
	case jsonvalue.Bool:
		return bool(val)
	default:
		return true
	}
}

func extText(v jsonvalue.Value) string {
	if s, ok := v.(jsonvalue.String); ok {
		return string(s)
	}
	out, err := jsonvalue.Marshal(v)
	if err != nil {
		return ""
	}
	return string(out)
}

// Selection is a set of include and exclude rules. An endpoint is selected
// when at least one include rule matches and no exclude rule does.
type Selection struct {
	Include []Selector
	Exclude []Selector
}

// NewSelection parses include and exclude selector strings.
func NewSelection(include, exclude []string) (*Selection, error) {
	s := &Selection{}
	for _, raw := range include {
		sel, err := ParseSelector(raw)
		if err != nil {
			return nil, err
		}
		s.Include = append(s.Include, sel)
	}
	for _, raw := range exclude {
		sel, err := ParseSelector(raw)
		if err != nil {
			return nil, err
		}
		s.Exclude = append(s.Exclude, sel)
	}
	return s, nil
}

// Merge appends other's rules to s.
func (s *Selection) Merge(other *Selection) {
	if other == nil {
		return
	}
	s.Include = append(s.Include, other.Include...)
	s.Exclude = append(s.Exclude, other.Exclude...)
}

// IsEmpty reports whether the selection has no include rule, in which case
// it selects nothing.
func (s *Selection) IsEmpty() bool {
	return s == nil || len(s.Include) == 0
}

// Matches reports whether ep is selected.
func (s *Selection) Matches(ep *Endpoint) bool {
	if s.IsEmpty() {
		return false
	}
	included := false
	for _, sel := range s.Include {
		if sel.Matches(ep) {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, sel := range s.Exclude {
		if sel.Matches(ep) {
			return false
		}
	}
	return true
}

// Apply sets the Selected flag of every endpoint and returns the selected
// ones in order.
func (s *Selection) Apply(endpoints []*Endpoint) []*Endpoint {
	for _, ep := range endpoints {
		ep.Selected = s.Matches(ep)
	}
	return SelectedEndpoints(endpoints)
}
