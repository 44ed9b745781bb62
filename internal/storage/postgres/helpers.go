package postgres

import "strings"

// escapeILIKEPattern neutralizes LIKE metacharacters in user-supplied
// search text so "50%" matches literally. Queries using the result must
// declare ESCAPE '\'.
func escapeILIKEPattern(input string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`%`, `\%`,
		`_`, `\_`,
	)
	return replacer.Replace(input)
}
