package rowstream

import (
	"reflect"
	"testing"
)

func TestDefaultFiller(t *testing.T) {
	headers := []string{"name", "homePhone", "mobilePhone"}

	tests := []struct {
		name     string
		defaults map[string]string
		line     []string
		expect   []string
	}{
		{
			name:     "no_defaults",
			defaults: nil,
			line:     []string{"Alice", "", ""},
			expect:   []string{"Alice", "", ""},
		},
		{
			name:     "fills_empty_cell",
			defaults: map[string]string{"homePhone": "5551234"},
			line:     []string{"Alice", "", "000"},
			expect:   []string{"Alice", "5551234", "000"},
		},
		{
			name:     "never_overwrites_present_value",
			defaults: map[string]string{"homePhone": "5551234"},
			line:     []string{"Alice", "123", "000"},
			expect:   []string{"Alice", "123", "000"},
		},
		{
			name:     "empty_default_is_ignored",
			defaults: map[string]string{"homePhone": ""},
			line:     []string{"Alice", "", "000"},
			expect:   []string{"Alice", "", "000"},
		},
		{
			name:     "default_for_unknown_header_is_ignored",
			defaults: map[string]string{"emailAddress": "test@example.org"},
			line:     []string{"Alice", "", ""},
			expect:   []string{"Alice", "", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fill := NewDefaultFiller(headers, tt.defaults)
			got := fill(tt.line)
			if !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("fill(%v) = %v, want %v", tt.line, got, tt.expect)
			}
		})
	}
}

func TestDefaultFillerIdentityWhenNothingFills(t *testing.T) {
	fill := NewDefaultFiller([]string{"a", "b"}, map[string]string{"a": "x"})

	line := []string{"present", "also present"}
	got := fill(line)
	if &got[0] != &line[0] {
		t.Fatal("expected the same slice back when no substitution occurs")
	}
}

func TestDefaultFillerIdempotent(t *testing.T) {
	fill := NewDefaultFiller([]string{"a", "b"}, map[string]string{"a": "x", "b": "y"})

	once := fill([]string{"", ""})
	twice := fill(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second fill changed the line: %v vs %v", once, twice)
	}
	if &once[0] != &twice[0] {
		t.Fatal("second fill should return the already-filled slice unchanged")
	}
}

func TestPositionalFiller(t *testing.T) {
	tests := []struct {
		name     string
		defaults []string
		line     []string
		expect   []string
	}{
		{
			name:     "empty_defaults_are_identity",
			defaults: nil,
			line:     []string{"", "b"},
			expect:   []string{"", "b"},
		},
		{
			name:     "fills_by_position",
			defaults: []string{"d1", "d2", "d3"},
			line:     []string{"", "present", ""},
			expect:   []string{"d1", "present", "d3"},
		},
		{
			name:     "empty_default_leaves_cell_empty",
			defaults: []string{"", "d2"},
			line:     []string{"", ""},
			expect:   []string{"", "d2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fill := NewPositionalFiller(tt.defaults)
			got := fill(tt.line)
			if !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("fill(%v) = %v, want %v", tt.line, got, tt.expect)
			}
		})
	}
}
