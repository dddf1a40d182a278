package content

import (
	"fmt"

	"github.com/coursekit/coursegraph/internal/issue"
)

// Normalize validates and coerces one raw record into a Unit. It is a pure
// transformation of a single record: corpus-wide checks (duplicate slugs,
// unresolved prerequisites) belong to later stages. The one exception is
// self-reference, which needs no corpus context and is rejected here.
//
// Failures are returned as *issue.Issue so the caller can fold them into the
// corpus-wide diagnostic list.
func Normalize(raw Raw) (*Unit, error) {
	slug, ok := stringField(raw, "slug")
	if !ok || slug == "" {
		return nil, issue.New(issue.MalformedRecord, "record has no usable slug", slug)
	}

	kindStr, ok := stringField(raw, "kind")
	if !ok {
		return nil, issue.New(issue.MalformedRecord, "record has no usable kind", slug)
	}
	kind := Kind(kindStr)
	switch kind {
	case KindLab, KindCourse, KindProject:
	default:
		return nil, issue.New(issue.MalformedRecord, fmt.Sprintf("unrecognized kind %q", kindStr), slug)
	}

	unit := &Unit{Slug: slug, Kind: kind}
	unit.Title, _ = stringField(raw, "title")
	unit.Description, _ = stringField(raw, "description")
	unit.CourseSlug, _ = stringField(raw, "courseSlug")

	if v, present := raw["prerequisites"]; present && v != nil {
		prereqs, ok := stringSlice(v)
		if !ok {
			return nil, issue.New(issue.MalformedRecord, "prerequisites is not a sequence of strings", slug)
		}
		unit.Prerequisites = prereqs
	}

	if v, present := raw["order"]; present && v != nil {
		order, ok := intField(v)
		if !ok {
			return nil, issue.New(issue.MalformedRecord, fmt.Sprintf("order %v is not an integer", v), slug)
		}
		unit.Order = &order
	}

	for _, p := range unit.Prerequisites {
		if p == slug {
			return nil, issue.New(issue.SelfDependency, "unit lists itself as a prerequisite", slug)
		}
	}

	return unit, nil
}

func stringField(raw Raw, key string) (string, bool) {
	v, present := raw[key]
	if !present || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// stringSlice accepts both []string and the []any a YAML decoder produces.
func stringSlice(v any) ([]string, bool) {
	switch vs := v.(type) {
	case []string:
		out := make([]string, len(vs))
		copy(out, vs)
		return out, true
	case []any:
		out := make([]string, 0, len(vs))
		for _, e := range vs {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// intField accepts the integer representations loaders hand over: native
// ints and whole-valued floats (some decoders widen numerics to float64).
func intField(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
