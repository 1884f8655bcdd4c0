// Package paths manipulates slash-separated paths, such as URL paths and S3
// keys, by purely lexical processing. It never consults a filesystem.
package paths

// Clean returns the shortest path equivalent to path by purely lexical
// processing:
//
//  1. runs of multiple "/" are replaced by a single "/"
//  2. each "." element is eliminated
//  3. each inner ".." element is eliminated along with the real element
//     that precedes it
//  4. ".." elements that begin a rooted path are eliminated, so "/.." is "/"
//
// Leading ".." elements of a relative path are kept. The result ends in a
// slash only if it is the root "/", and an empty result is returned as ".".
func Clean(path string) string {
	if path == "" || path == "." {
		return "."
	}

	n := len(path)
	rooted := path[0] == '/'

	// r is the next byte to read from path. dotdot is the offset in out
	// before which a ".." may not backtrack: just past the root slash, or
	// just past a leading run of retained ".." elements.
	out := make([]byte, 0, n)
	r, dotdot := 0, 0
	if rooted {
		out = append(out, '/')
		r, dotdot = 1, 1
	}

	for r < n {
		switch {
		case path[r] == '/':
			r++
		case path[r] == '.' && (r+1 == n || path[r+1] == '/'):
			r++
		case path[r] == '.' && r+1 < n && path[r+1] == '.' && (r+2 == n || path[r+2] == '/'):
			r += 2
			switch {
			case len(out) > dotdot:
				w := len(out) - 1
				for w > dotdot && out[w] != '/' {
					w--
				}
				out = out[:w]
			case !rooted:
				if len(out) > 0 {
					out = append(out, '/')
				}
				out = append(out, '.', '.')
				dotdot = len(out)
			}
		default:
			if rooted && len(out) != 1 || !rooted && len(out) != 0 {
				out = append(out, '/')
			}
			for ; r < n && path[r] != '/'; r++ {
				out = append(out, path[r])
			}
		}
	}

	if len(out) == 0 {
		return "."
	}
	return string(out)
}

// CleanPtr is Clean for an optional path. A nil path is returned as nil.
func CleanPtr(path *string) *string {
	if path == nil {
		return nil
	}
	cleaned := Clean(*path)
	return &cleaned
}
