package match

import "strings"

// Mapping associates a physical column index (0-based within one located
// table) with the target field it carries. At most one column maps to a given
// field; the leftmost match wins.
type Mapping map[int]Field

// Matcher resolves header rows against an alias set.
type Matcher struct {
	aliases AliasSet
}

// NewMatcher returns a Matcher over the given aliases, or the defaults when
// aliases is nil or empty.
func NewMatcher(aliases AliasSet) *Matcher {
	if len(aliases) == 0 {
		aliases = DefaultAliases()
	}
	return &Matcher{aliases: aliases}
}

// MatchCell returns the field a single header cell resolves to, or "" when it
// matches none. Matching is case- and whitespace-insensitive substring
// containment in both directions, which tolerates abbreviation ("Mid. Name"
// matches the "mi" alias) and extra words ("Student Last Name").
func (m *Matcher) MatchCell(cell string) Field {
	h := Normalize(cell)
	if h == "" {
		return ""
	}
	for _, field := range FieldOrder {
		for _, alias := range m.aliases[field] {
			a := Normalize(alias)
			if a == "" {
				continue
			}
			if strings.Contains(h, a) || strings.Contains(a, h) {
				return field
			}
		}
	}
	return ""
}

// Match builds a Mapping from a header row. Cells that resolve to a field
// already claimed by an earlier (leftmost) cell are discarded; cells matching
// no alias are ignored. An empty Mapping means the row is not a usable header.
func (m *Matcher) Match(cells []string) Mapping {
	mapping := make(Mapping)
	claimed := make(map[Field]bool, len(FieldOrder))
	for idx, cell := range cells {
		field := m.MatchCell(cell)
		if field == "" || claimed[field] {
			continue
		}
		mapping[idx] = field
		claimed[field] = true
	}
	return mapping
}

// Score returns how many distinct fields the row resolves. Used by the table
// locator to rank candidate regions and to detect repeated headers.
func (m *Matcher) Score(cells []string) int {
	return len(m.Match(cells))
}
