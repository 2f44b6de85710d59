// Package labels builds the ordered atlas id to anatomical name lookup used
// to annotate correlation reports. It reads FreeSurfer-style lookup tables
// ("id name ..." per line, '#' comments) as well as two-column delimited
// files ("id,name" or "id;name").
package labels

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Dictionary maps atlas integer ids to display names, ordered by id. The
// zero value is an empty dictionary, which is valid: lookups simply miss and
// callers fall back to synthetic names.
type Dictionary struct {
	names map[int]string
	ids   []int
}

// NewDictionary builds a dictionary from an id to name mapping.
func NewDictionary(names map[int]string) *Dictionary {
	d := &Dictionary{names: make(map[int]string, len(names))}
	for id, name := range names {
		d.names[id] = name
		d.ids = append(d.ids, id)
	}
	sort.Ints(d.ids)
	return d
}

// Load reads a label table from disk. A missing or unparseable file returns
// an empty dictionary together with the error, so callers can downgrade the
// failure to a warning and keep going with synthetic names.
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return NewDictionary(nil), fmt.Errorf("failed to open label table: %w", err)
	}
	defer f.Close()

	names := make(map[int]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id, name, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		names[id] = name
	}
	if err := scanner.Err(); err != nil {
		return NewDictionary(nil), fmt.Errorf("failed to read label table: %w", err)
	}
	if len(names) == 0 {
		return NewDictionary(nil), fmt.Errorf("label table %s contains no id/name entries", path)
	}

	return NewDictionary(names), nil
}

// parseLine extracts an (id, name) pair from one table line. Blank lines and
// '#' comments are skipped. Whitespace-separated lines take the first field
// as the id and the second as the name (trailing columns such as FreeSurfer
// RGBA values are ignored); comma and semicolon delimited lines are split on
// the first delimiter.
func parseLine(line string) (int, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return 0, "", false
	}

	var idField, nameField string
	switch {
	case strings.Contains(line, ","):
		parts := strings.SplitN(line, ",", 2)
		idField, nameField = parts[0], parts[1]
	case strings.Contains(line, ";"):
		parts := strings.SplitN(line, ";", 2)
		idField, nameField = parts[0], parts[1]
	default:
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, "", false
		}
		idField, nameField = fields[0], fields[1]
	}

	id, err := strconv.Atoi(strings.TrimSpace(idField))
	if err != nil {
		return 0, "", false
	}
	name := strings.TrimSpace(nameField)
	if name == "" {
		return 0, "", false
	}
	return id, name, true
}

// Lookup returns the display name for an atlas id and whether one is known.
func (d *Dictionary) Lookup(id int) (string, bool) {
	if d == nil || d.names == nil {
		return "", false
	}
	name, ok := d.names[id]
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// Len returns the number of named ids.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.ids)
}

// IDs returns the known atlas ids in ascending order.
func (d *Dictionary) IDs() []int {
	if d == nil {
		return nil
	}
	out := make([]int, len(d.ids))
	copy(out, d.ids)
	return out
}
