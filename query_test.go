package via

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseQuery(t *testing.T) {
	q := parseQuery("query=books&category=fiction&sort=asc")

	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}
	for name, want := range map[string]string{
		"query":    "books",
		"category": "fiction",
		"sort":     "asc",
	} {
		if got := q.First(name).String(); got != want {
			t.Errorf("First(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestParseQueryCollapsesDelimiters(t *testing.T) {
	tests := []struct {
		raw  string
		name string
		want string
	}{
		// Double ampersand
		{"query=books&&category=fiction", "category", "fiction"},
		// Double equal sign
		{"query==books&category=fiction", "query", "books"},
		// Trailing ampersand
		{"query=books&category=fiction&", "category", "fiction"},
	}
	for _, tt := range tests {
		q := parseQuery(tt.raw)
		if got := q.First(tt.name).String(); got != tt.want {
			t.Errorf("parseQuery(%q).First(%q) = %q, want %q", tt.raw, tt.name, got, tt.want)
		}
		if q.Len() != 2 {
			t.Errorf("parseQuery(%q).Len() = %d, want 2", tt.raw, q.Len())
		}
	}
}

func TestParseQueryEmptyNamesAndValues(t *testing.T) {
	// A key without a value and a value without a key are both yielded.
	q := parseQuery("query=books&category&=fiction")

	if !q.Contains("category") {
		t.Error("expected valueless pair to be yielded")
	}
	if got := q.First("category").String(); got != "" {
		t.Errorf("First(\"category\") = %q, want \"\"", got)
	}
	if got := q.First("").String(); got != "fiction" {
		t.Errorf("First(\"\") = %q, want %q", got, "fiction")
	}
	// "k=" reads the same as "k".
	if got := parseQuery("category=").First("category").String(); got != "" {
		t.Errorf("First on empty value = %q, want \"\"", got)
	}
}

func TestQueryMissingNameReadsEmpty(t *testing.T) {
	q := parseQuery("query=books")

	if q.Contains("missing") {
		t.Error("Contains(\"missing\") = true")
	}
	// Lookups never miss; an absent pair reads as the empty string.
	value, ok := q.First("missing").Optional()
	if !ok || value != "" {
		t.Errorf("Optional() = (%q, %v), want (\"\", true)", value, ok)
	}
}

func TestQueryFirstLastAll(t *testing.T) {
	q := parseQuery("category=books&category=electronics&category=clothing")

	if got := q.First("category").String(); got != "books" {
		t.Errorf("First = %q", got)
	}
	if got := q.Last("category").String(); got != "clothing" {
		t.Errorf("Last = %q", got)
	}

	var all []string
	for _, p := range q.All("category") {
		all = append(all, p.String())
	}
	if diff := cmp.Diff([]string{"books", "electronics", "clothing"}, all); diff != "" {
		t.Errorf("All mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryDecodesNamesEagerlyValuesLazily(t *testing.T) {
	q := parseQuery("ca%74egory=fic%74ion&query=hello%20world")

	// Names decode while parsing.
	if !q.Contains("category") {
		t.Fatal("expected percent-encoded name to decode")
	}
	// Values decode on access, and only when asked to.
	if got := q.First("category").String(); got != "fic%74ion" {
		t.Errorf("raw value = %q", got)
	}
	decoded, err := q.First("category").Decode().Require()
	if err != nil || decoded != "fiction" {
		t.Errorf("decoded value = (%q, %v)", decoded, err)
	}
	decoded, err = q.First("query").Decode().Require()
	if err != nil || decoded != "hello world" {
		t.Errorf("decoded value = (%q, %v)", decoded, err)
	}
}

func TestQueryValueSpansToEndOfInput(t *testing.T) {
	raw := `data={"name":"John","age":30}`
	q := parseQuery(raw)

	if got := q.First("data").String(); got != `{"name":"John","age":30}` {
		t.Errorf("First(\"data\") = %q", got)
	}
}
