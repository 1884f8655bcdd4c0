package paths

import "strings"

// Join joins any number of path elements with "/", skipping empty
// elements, and cleans the result. Unlike Clean, it returns "" rather than
// "." when there is nothing to join.
func Join(elements ...string) string {
	kept := make([]string, 0, len(elements))
	for _, e := range elements {
		if e != "" {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return Clean(strings.Join(kept, "/"))
}

// EnsureAbs returns path as a clean rooted path. The empty path stays
// empty, and relative ".." elements are clamped at the root.
func EnsureAbs(path string) string {
	if path == "" {
		return ""
	}
	if path[0] == '/' {
		return Clean(path)
	}
	return Clean("/" + path)
}
