package members

import "strings"

// Filter returns the records having query as a case-insensitive substring
// of any of id, name, email or role. Input order is kept; input is not
// modified.
func Filter(records []Record, query string) []Record {
	q := strings.ToLower(query)

	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if q == "" || r.matches(q) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func (r Record) matches(lowerQuery string) bool {
	for _, v := range [...]string{r.ID, r.Name, r.Email, r.Role} {
		if strings.Contains(strings.ToLower(v), lowerQuery) {
			return true
		}
	}
	return false
}
