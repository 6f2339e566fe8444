package constraints

import (
	"fmt"

	"github.com/dd0wney/sbolgraph/pkg/sbol"
)

// UniquenessConstraint checks that no two entities share an identity (full
// or persistent) and that no two children of one owner share a displayId.
// Documents reject collisions at creation time; this catches graphs built by
// other means.
type UniquenessConstraint struct{}

// Name returns a human-readable name for this constraint
func (c *UniquenessConstraint) Name() string {
	return "UniquenessConstraint"
}

// Validate reports every entity after the first that reuses an identity, and
// every sibling after the first that reuses a displayId.
func (c *UniquenessConstraint) Validate(doc DocumentReader) ([]Violation, error) {
	var violations []Violation

	// identity or persistent identity -> first entity holding it
	seen := make(map[string]sbol.Entity)
	// owner + displayId -> first child holding it
	siblings := make(map[[2]string]sbol.Entity)

	for _, e := range doc.Entities() {
		keys := []string{e.PersistentIdentity()}
		if e.Identity() != e.PersistentIdentity() {
			keys = append(keys, e.Identity())
		}
		for _, key := range keys {
			if first, ok := seen[key]; ok {
				v := violationOn(e, DuplicateIdentity, "identity", c.Name(),
					fmt.Sprintf("identity %s is already used by %s %s", key, first.Kind(), first.Identity()))
				v.Details = map[string]any{"identity": key, "first": first.Identity()}
				violations = append(violations, v)
				continue
			}
			seen[key] = e
		}

		if e.Parent() == "" || e.DisplayID() == "" {
			continue
		}
		key := [2]string{e.Parent(), e.DisplayID()}
		if first, ok := siblings[key]; ok {
			v := violationOn(e, DuplicateIdentity, "displayId", c.Name(),
				fmt.Sprintf("displayId %q is already used by sibling %s", e.DisplayID(), first.Identity()))
			v.Details = map[string]any{"displayId": e.DisplayID(), "parent": e.Parent(), "first": first.Identity()}
			violations = append(violations, v)
			continue
		}
		siblings[key] = e
	}

	return violations, nil
}
