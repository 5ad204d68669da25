package via

import "net/url"

// Query is a parsed view over a raw query string. Names are decoded while
// parsing; values are recorded as byte ranges into the raw input and
// decoded lazily on access.
type Query struct {
	raw     string
	entries []queryEntry
}

type queryEntry struct {
	name  string
	start int // -1 when the pair carries no value
	end   int
}

// parseQuery splits raw on '&' and '=' delimiters. Empty names and values
// are yielded; runs of consecutive delimiters collapse.
func parseQuery(raw string) Query {
	q := Query{raw: raw}

	i := 0
	for i < len(raw) {
		for i < len(raw) && raw[i] == '&' {
			i++
		}
		if i >= len(raw) {
			break
		}

		start := i
		for i < len(raw) && raw[i] != '=' && raw[i] != '&' {
			i++
		}
		name := raw[start:i]
		if decoded, err := url.QueryUnescape(name); err == nil {
			name = decoded
		}

		entry := queryEntry{name: name, start: -1, end: -1}
		if i < len(raw) && raw[i] == '=' {
			for i < len(raw) && raw[i] == '=' {
				i++
			}
			from := i
			for i < len(raw) && raw[i] != '&' {
				i++
			}
			if i > from {
				entry.start, entry.end = from, i
			}
		}

		q.entries = append(q.entries, entry)
	}

	return q
}

func (q Query) param(at *queryEntry, name string) Param {
	p := Param{name: name, source: q.raw, found: true, unescape: unescapeQuery}
	if at == nil || at.start < 0 {
		// Missing pairs and valueless pairs both read as the empty string.
		p.start, p.end = 0, 0
		return p
	}
	p.start, p.end = at.start, at.end
	return p
}

// Contains reports whether any pair with the given name was present.
func (q Query) Contains(name string) bool {
	for i := range q.entries {
		if q.entries[i].name == name {
			return true
		}
	}
	return false
}

// First returns the value of the first pair with the given name.
func (q Query) First(name string) Param {
	for i := range q.entries {
		if q.entries[i].name == name {
			return q.param(&q.entries[i], name)
		}
	}
	return q.param(nil, name)
}

// Last returns the value of the last pair with the given name.
func (q Query) Last(name string) Param {
	for i := len(q.entries) - 1; i >= 0; i-- {
		if q.entries[i].name == name {
			return q.param(&q.entries[i], name)
		}
	}
	return q.param(nil, name)
}

// All returns the values of every pair with the given name, in order.
func (q Query) All(name string) []Param {
	var params []Param
	for i := range q.entries {
		if q.entries[i].name == name {
			params = append(params, q.param(&q.entries[i], name))
		}
	}
	return params
}

// Len reports how many pairs the query string contains.
func (q Query) Len() int {
	return len(q.entries)
}
