package pagefactory

import "strings"

// PathSeparator joins block titles into a path expression. It is reserved:
// a title containing it cannot be addressed.
const PathSeparator = "->"

// SplitPath splits a path expression into its block titles.
func SplitPath(path string) []string {
	return strings.Split(path, PathSeparator)
}

// JoinPath builds a path expression from block titles.
func JoinPath(titles ...string) string {
	return strings.Join(titles, PathSeparator)
}
