package viewcache

import "strings"

const keyPrefix = "view:"

// key layout: view:{path}|{variant}
func cacheKey(path, variant string) string {
	return pathPrefix(path) + variant
}

func pathPrefix(path string) string {
	return keyPrefix + path + "|"
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// pathPattern returns a Redis MATCH pattern selecting every variant of path.
func pathPattern(path string) string {
	return globEscaper.Replace(pathPrefix(path)) + "*"
}
