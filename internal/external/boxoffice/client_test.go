package boxoffice

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const chartHTML = `
<html><body>
<table class="chart">
  <tbody>
    <tr>
      <td class="title"><a href="/movies/the-heist-2024">The Heist</a></td>
      <td class="domestic">$12,345,678</td>
      <td class="worldwide">$23,456,789</td>
    </tr>
    <tr>
      <td class="title"><a href="/movies/small-town/">Small Town</a></td>
      <td class="domestic">$900,000</td>
      <td class="worldwide">&mdash;</td>
    </tr>
    <tr>
      <td class="title"><a href="/movies/no-numbers">No Numbers</a></td>
      <td class="domestic">&mdash;</td>
      <td class="worldwide">&mdash;</td>
    </tr>
    <tr>
      <td class="title"><a href="">Broken Link</a></td>
      <td class="domestic">$1,000</td>
      <td class="worldwide">$2,000</td>
    </tr>
  </tbody>
</table>
</body></html>`

func TestParseChart(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(chartHTML))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	entries := parseChart(doc)

	// "No Numbers" has no parseable gross at all; "Broken Link" has no slug
	if len(entries) != 2 {
		t.Fatalf("parseChart() returned %d entries, want 2", len(entries))
	}

	first := entries[0]
	if first.Title != "The Heist" || first.Slug != "the-heist-2024" {
		t.Errorf("first entry = %q/%q, want The Heist/the-heist-2024", first.Title, first.Slug)
	}
	if first.DomesticGross != 12345678 {
		t.Errorf("first domestic = %d, want 12345678", first.DomesticGross)
	}
	if first.WorldwideGross != 23456789 {
		t.Errorf("first worldwide = %d, want 23456789", first.WorldwideGross)
	}

	second := entries[1]
	if second.Slug != "small-town" {
		t.Errorf("second slug = %q, want small-town (trailing slash trimmed)", second.Slug)
	}
	if second.DomesticGross != 900000 || second.WorldwideGross != 0 {
		t.Errorf("second gross = %d/%d, want 900000/0", second.DomesticGross, second.WorldwideGross)
	}
}

func TestParseGross(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"$12,345,678", 12345678, true},
		{"  $900,000 ", 900000, true},
		{"0", 0, true},
		{"—", 0, false},
		{"", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseGross(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseGross(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSlugFromHref(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/movies/the-heist-2024", "the-heist-2024"},
		{"/movies/small-town/", "small-town"},
		{"no-slash", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := slugFromHref(tt.in); got != tt.want {
			t.Errorf("slugFromHref(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
