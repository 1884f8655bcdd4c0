package paths

import (
	"path"
	"strings"
	"testing"
)

// referenceClean is the obvious split-and-stack rendition of Clean.
func referenceClean(p string) string {
	if p == "" {
		return "."
	}
	rooted := p[0] == '/'

	var stack []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			switch {
			case len(stack) > 0 && stack[len(stack)-1] != "..":
				stack = stack[:len(stack)-1]
			case !rooted:
				stack = append(stack, "..")
			}
		default:
			stack = append(stack, seg)
		}
	}

	joined := strings.Join(stack, "/")
	if rooted {
		return "/" + joined
	}
	if joined == "" {
		return "."
	}
	return joined
}

// FuzzClean cross-checks the single-pass Clean against the stack
// reference and the standard library.
func FuzzClean(f *testing.F) {
	f.Add("")
	f.Add("/..")
	f.Add("abc/def/../../../ghi/jkl/../../../mno")
	f.Add("//a/./b/../../..//c/")
	f.Add("../a/../../b")
	f.Add(".../..")

	f.Fuzz(func(t *testing.T, p string) {
		got := Clean(p)

		if want := referenceClean(p); got != want {
			t.Errorf("Clean(%q) = %q, reference gives %q", p, got, want)
		}
		if want := path.Clean(p); got != want {
			t.Errorf("Clean(%q) = %q, path.Clean gives %q", p, got, want)
		}
		if again := Clean(got); again != got {
			t.Errorf("Clean(%q) = %q is not idempotent (%q)", p, got, again)
		}
	})
}
