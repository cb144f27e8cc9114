// Package alias expands short "alias:path" repository locations into pull
// URLs. An alias definition has the form "pullpattern#pushpattern"; a pattern
// containing %s has the path substituted into it, otherwise the path is
// appended. The pattern "x" marks a direction as unsupported.
package alias

import (
	"fmt"
	"strings"
)

// Resolver resolves repository locations against a fixed alias table
type Resolver struct {
	pull map[string]string
}

// NewResolver parses the alias table. Every alias needs a usable pull pattern.
func NewResolver(aliases map[string]string) (*Resolver, error) {
	pull := make(map[string]string, len(aliases))
	for name, spec := range aliases {
		pattern, _, _ := strings.Cut(spec, "#")
		if pattern == "" || pattern == "x" {
			return nil, fmt.Errorf("alias %q has no pull pattern", name)
		}
		pull[name] = pattern
	}
	return &Resolver{pull: pull}, nil
}

// PullURL resolves one repository location. Locations that are already full
// URLs pass through untouched.
func (r *Resolver) PullURL(location string) (string, error) {
	if strings.Contains(location, "://") {
		return location, nil
	}

	name, rest, found := strings.Cut(location, ":")
	if !found {
		return "", fmt.Errorf("repository %q is neither a URL nor an alias", location)
	}

	pattern, ok := r.pull[name]
	if !ok {
		return "", fmt.Errorf("unknown repository alias %q in %q", name, location)
	}

	if strings.Contains(pattern, "%s") {
		return strings.Replace(pattern, "%s", rest, 1), nil
	}
	return pattern + rest, nil
}
