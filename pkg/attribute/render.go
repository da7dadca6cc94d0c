package attribute

import (
	"strconv"
	"strings"
)

// Record is one secret/salt/iv triple. Ciphertext, salt and iv are base64.
type Record struct {
	Serial int
	Secret string
	Salt   string
	IV     string
}

// Lines returns the record as attribute tokens.
func (r Record) Lines() []string {
	n := strconv.Itoa(r.Serial)
	return []string{
		PrefixSecret + n + ": " + r.Secret,
		PrefixSalt + n + ": " + r.Salt,
		PrefixIV + n + ": " + r.IV,
	}
}

// Render joins the tokens of all records with ", ".
func Render(records ...Record) string {
	lines := make([]string, 0, len(records)*3)
	for _, r := range records {
		lines = append(lines, r.Lines()...)
	}
	return strings.Join(lines, ", ")
}
