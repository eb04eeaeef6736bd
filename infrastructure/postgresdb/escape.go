package postgresdb

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	dangerousChars    = regexp.MustCompile(`[;'"\\()]`)
	identifierPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
)

// QuoteIdentifier validates and quotes a SQL identifier, allowing an
// optional schema qualifier. Returns an error rather than risking an
// injectable identifier in a built query.
func QuoteIdentifier(name string) (string, error) {
	if dangerousChars.MatchString(name) {
		return "", fmt.Errorf("identifier contains dangerous characters: %s", name)
	}
	if strings.Contains(name, " ") {
		return "", fmt.Errorf("invalid identifier format: %s", name)
	}

	segments := strings.Split(name, ".")
	if len(segments) > 2 {
		return "", fmt.Errorf("invalid identifier format (too many segments): %s", name)
	}

	quoted := make([]string, len(segments))
	for i, segment := range segments {
		if !identifierPattern.MatchString(segment) {
			return "", fmt.Errorf("invalid identifier segment at position %d: %s", i, segment)
		}
		quoted[i] = fmt.Sprintf(`"%s"`, segment)
	}

	return strings.Join(quoted, "."), nil
}
