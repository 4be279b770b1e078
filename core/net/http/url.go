package http

import (
	"path"
	"strconv"
)

// Join joins path segments, skipping empty ones
func Join(base string, segments ...string) string {
	if len(segments) == 0 {
		return base
	}

	allPaths := make([]string, 0, len(segments)+1)
	if base != "" {
		allPaths = append(allPaths, base)
	}

	for _, segment := range segments {
		if segment != "" {
			allPaths = append(allPaths, segment)
		}
	}

	return path.Join(allPaths...)
}

// ResourcePath returns "/<collection>/<id>"
func ResourcePath(collection string, id int) string {
	return Join("/", collection, strconv.Itoa(id))
}
