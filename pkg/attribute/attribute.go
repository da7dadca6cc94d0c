package attribute

import (
	"slices"
	"strconv"
	"strings"
)

// Prefixes of the three series making up a record.
const (
	PrefixSecret = "Secret"
	PrefixSalt   = "Salt"
	PrefixIV     = "Iv"
)

const valueTerminators = ",}]"

// Entry is one value of a series together with its serial.
type Entry struct {
	Serial int
	Value  string
}

// Snapshot is an immutable view of one attribute string.
type Snapshot struct {
	text   string
	series map[string][]Entry
}

// Parse scans text once for the Secret, Salt and Iv series.
func Parse(text string) Snapshot {
	s := Snapshot{
		text:   text,
		series: make(map[string][]Entry, 3),
	}
	for _, prefix := range []string{PrefixSecret, PrefixSalt, PrefixIV} {
		s.series[prefix] = extractSeries(text, prefix)
	}
	return s
}

// Series returns the values for prefix in serial order.
func (s Snapshot) Series(prefix string) []Entry {
	if entries, ok := s.series[prefix]; ok {
		return slices.Clone(entries)
	}
	return extractSeries(s.text, prefix)
}

// Values returns the bare values of the series for prefix.
func (s Snapshot) Values(prefix string) []string {
	entries := s.Series(prefix)
	values := make([]string, 0, len(entries))
	for _, e := range entries {
		values = append(values, e.Value)
	}
	return values
}

// Latest returns the value with the highest serial for prefix.
func (s Snapshot) Latest(prefix string) (Entry, bool) {
	entries := s.Series(prefix)
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[len(entries)-1], true
}

// Current returns the authoritative record. It is absent unless all three
// series have at least one value. Each field is the latest of its own
// series; Serial is the secret's. See Aligned.
func (s Snapshot) Current() (Record, bool) {
	secret, ok := s.Latest(PrefixSecret)
	if !ok {
		return Record{}, false
	}
	salt, ok := s.Latest(PrefixSalt)
	if !ok {
		return Record{}, false
	}
	iv, ok := s.Latest(PrefixIV)
	if !ok {
		return Record{}, false
	}
	return Record{
		Serial: secret.Serial,
		Secret: secret.Value,
		Salt:   salt.Value,
		IV:     iv.Value,
	}, true
}

// Aligned reports whether the latest Secret, Salt and Iv share one serial.
// A partially written rotation leaves them apart and Current then mixes
// records.
func (s Snapshot) Aligned() bool {
	secret, ok1 := s.Latest(PrefixSecret)
	salt, ok2 := s.Latest(PrefixSalt)
	iv, ok3 := s.Latest(PrefixIV)
	return ok1 && ok2 && ok3 && secret.Serial == salt.Serial && salt.Serial == iv.Serial
}

func (s Snapshot) CurrentSecret() (string, bool) { return s.latestValue(PrefixSecret) }
func (s Snapshot) CurrentSalt() (string, bool)   { return s.latestValue(PrefixSalt) }
func (s Snapshot) CurrentIV() (string, bool)     { return s.latestValue(PrefixIV) }

func (s Snapshot) latestValue(prefix string) (string, bool) {
	e, ok := s.Latest(prefix)
	return e.Value, ok
}

// NextSerial returns the serial a newly provisioned record must use: one
// above the highest serial visible in any of the three series, or 0.
func (s Snapshot) NextSerial() int {
	next := 0
	for _, entries := range s.series {
		if n := len(entries); n > 0 && entries[n-1].Serial >= next {
			next = entries[n-1].Serial + 1
		}
	}
	return next
}

// extractSeries probes serials upward from 0, tolerating single gaps.
func extractSeries(text, prefix string) []Entry {
	var entries []Entry
	for serial := 0; ; serial++ {
		if value, ok := lookup(text, prefix, serial); ok {
			entries = append(entries, Entry{Serial: serial, Value: value})
			continue
		}
		// The value at serial+1, if any, is picked up by the next iteration.
		if _, ok := lookup(text, prefix, serial+1); !ok {
			return entries
		}
	}
}

func lookup(text, prefix string, serial int) (string, bool) {
	token := prefix + strconv.Itoa(serial) + ": "
	i := strings.Index(text, token)
	if i < 0 {
		return "", false
	}
	rest := text[i+len(token):]
	if end := strings.IndexAny(rest, valueTerminators); end >= 0 {
		rest = rest[:end]
	}
	return rest, true
}
