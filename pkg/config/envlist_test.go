package config

import (
	"reflect"
	"testing"
)

func TestParseEnvList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"comma separated", "py311, py312", []string{"py311", "py312"}},
		{"newline separated", "py311\npy312\npy313", []string{"py311", "py312", "py313"}},
		{"mixed separators", "py311,py312\nlint", []string{"py311", "py312", "lint"}},
		{"duplicates dropped", "py311, py312, py311", []string{"py311", "py312"}},
		{"whitespace trimmed", "  py311 ,\n  py312  ", []string{"py311", "py312"}},
		{"empty chunks skipped", "py311,,\n,py312", []string{"py311", "py312"}},
		{"empty input", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEnvList(tt.raw).Names()
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseEnvList(%q).Names() = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNewEnvListDedup(t *testing.T) {
	list := NewEnvList([]string{"b", "a", "b", "c", "a"})
	if got := list.Names(); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("Names() = %v, want [b a c]", got)
	}
	if list.Len() != 3 {
		t.Errorf("Len() = %d, want 3", list.Len())
	}
}

func TestEnvListString(t *testing.T) {
	if got := NewEnvList([]string{"py311", "py312"}).String(); got != "py311, py312" {
		t.Errorf("String() = %q, want %q", got, "py311, py312")
	}
	if got := NewEnvList(nil).String(); got != "" {
		t.Errorf("empty String() = %q, want empty", got)
	}
}

func TestEnvListNamesCopy(t *testing.T) {
	list := NewEnvList([]string{"py311"})
	names := list.Names()
	names[0] = "mutated"
	if got := list.Names()[0]; got != "py311" {
		t.Errorf("mutating Names() result changed the list: %q", got)
	}
}
