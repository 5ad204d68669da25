package router

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		path string
		want []Span
	}{
		{"/home/about", []Span{{1, 5}, {6, 11}}},
		{"/products/item/123", []Span{{1, 9}, {10, 14}, {15, 18}}},
		{"/blog/posts/2024/june", []Span{{1, 5}, {6, 11}, {12, 16}, {17, 21}}},
		{"/search/results?q=books", []Span{{1, 7}, {8, 23}}},
		{"/faq", []Span{{1, 4}}},
		{"/", nil},
		{"", nil},
		// Empty segments between consecutive slashes are yielded so the
		// tree can treat them as zero-length matches.
		{"/a//b", []Span{{1, 2}, {3, 3}, {4, 5}}},
		{"//home", []Span{{1, 1}, {2, 6}}},
		// A trailing slash produces no final segment.
		{"/about/", []Span{{1, 6}}},
		{"//", []Span{{1, 1}}},
	}

	for _, tt := range tests {
		got := Split(tt.path)
		if len(got) == 0 {
			got = nil
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Split(%q) mismatch (-want +got):\n%s", tt.path, diff)
		}
	}
}

func TestSplitSpansSliceOriginalPath(t *testing.T) {
	path := "/user/profile/settings"
	want := []string{"user", "profile", "settings"}

	var got []string
	for _, span := range Split(path) {
		got = append(got, path[span.Start:span.End])
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("segment mismatch (-want +got):\n%s", diff)
	}
}

func TestPatternOf(t *testing.T) {
	tests := []struct {
		segment string
		want    Pattern
	}{
		{"echo", Pattern{Kind: Static, Name: "echo"}},
		{":id", Pattern{Kind: Dynamic, Name: "id"}},
		{"*path", Pattern{Kind: Wildcard, Name: "path"}},
		{"", Pattern{Kind: Static}},
	}

	for _, tt := range tests {
		if got := PatternOf(tt.segment); got != tt.want {
			t.Errorf("PatternOf(%q) = %+v, want %+v", tt.segment, got, tt.want)
		}
	}
}

func TestPatternOfUnnamedParamPanics(t *testing.T) {
	for _, segment := range []string{":", "*"} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("PatternOf(%q) did not panic", segment)
				}
			}()
			PatternOf(segment)
		}()
	}
}

func TestPatternsSkipsEmptySegments(t *testing.T) {
	want := []Pattern{
		{Kind: Static, Name: "articles"},
		{Kind: Dynamic, Name: "id"},
	}

	got := Patterns("//articles//:id/")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Patterns mismatch (-want +got):\n%s", diff)
	}
}
