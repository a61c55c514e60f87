// Package paths provides lexical path normalization for rule patterns.
//
// Patterns may contain glob metacharacters and may reference paths that do
// not exist yet, so filesystem-backed canonicalization cannot be used when
// a rule is stored. Normalization here is purely lexical: it joins, drops
// "." segments and resolves ".." segments, leaving everything else (most
// importantly *, ** and ?) untouched.
package paths

import (
	"strings"

	"github.com/heat1q/clir/pkg/errors"
)

// Normalize resolves raw against baseDir without consulting the
// filesystem. Relative inputs are joined onto baseDir first. It fails if
// the result is not rooted or if a ".." segment would escape the root.
func Normalize(raw, baseDir string) (string, error) {
	if raw == "" {
		return "", errors.New(errors.ErrPathInvalid, "empty path")
	}

	path := raw
	if !strings.HasPrefix(path, "/") {
		path = baseDir + "/" + path
	}
	if !strings.HasPrefix(path, "/") {
		return "", errors.Newf(errors.ErrPathInvalid, "path %q is not rooted", raw)
	}

	var segments []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			// skip
		case "..":
			if len(segments) == 0 {
				return "", errors.Newf(errors.ErrPathInvalid, "path %q escapes the root", raw)
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, seg)
		}
	}

	return "/" + strings.Join(segments, "/"), nil
}
