package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestRecord(t *testing.T) {
	t.Run("Clone", func(t *testing.T) {
		original := Record{"uri": "spotify:track:1", "name": "Song"}
		clone := original.Clone()
		clone["name"] = "Changed"

		if original["name"] != "Song" {
			t.Errorf("clone should not alias the original, got name %v", original["name"])
		}

		var nilRecord Record
		if nilRecord.Clone() != nil {
			t.Error("cloning a nil record should return nil")
		}
	})

	t.Run("Path", func(t *testing.T) {
		r := Record{
			"name":      "Artist",
			"followers": map[string]any{"total": float64(42)},
			"nested":    Record{"deeper": Record{"value": "x"}},
		}

		tc := []struct {
			name     string
			property string
			want     any
			wantOK   bool
		}{
			{name: "top level", property: "name", want: "Artist", wantOK: true},
			{name: "dotted map", property: "followers.total", want: float64(42), wantOK: true},
			{name: "dotted record", property: "nested.deeper.value", want: "x", wantOK: true},
			{name: "missing", property: "popularity", wantOK: false},
			{name: "through scalar", property: "name.length", wantOK: false},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				got, ok := r.Path(tt.property)
				if ok != tt.wantOK {
					t.Fatalf("Path(%q) ok = %v, want %v", tt.property, ok, tt.wantOK)
				}
				if ok && got != tt.want {
					t.Errorf("Path(%q) = %v, want %v", tt.property, got, tt.want)
				}
			})
		}
	})

	t.Run("URI", func(t *testing.T) {
		if got := (Record{"uri": "local:album:a"}).URI(); got != "local:album:a" {
			t.Errorf("URI() = %q", got)
		}
		if got := (Record{"uri": 12}).URI(); got != "" {
			t.Errorf("URI() for non-string = %q, want empty", got)
		}
	})
}

func TestTruthy(t *testing.T) {
	tc := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"empty string", "", false},
		{"string", "x", true},
		{"zero float", float64(0), false},
		{"float", 1.5, true},
		{"NaN", math.NaN(), false},
		{"zero int", 0, false},
		{"json number", json.Number("3"), true},
		{"empty list", []any{}, true},
		{"empty object", map[string]any{}, true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.value); got != tt.want {
				t.Errorf("Truthy(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestStringify(t *testing.T) {
	tc := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "Bob", "Bob"},
		{"whole float", float64(7), "7"},
		{"fraction", 2.5, "2.5"},
		{"bool", true, "true"},
		{"list", []any{"a", float64(1), nil}, "a,1,"},
		{"object", map[string]any{"a": 1}, "[object Object]"},
		{"nil", nil, "null"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stringify(tt.value); got != tt.want {
				t.Errorf("Stringify(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestInt(t *testing.T) {
	tc := []struct {
		name   string
		value  any
		want   int
		wantOK bool
	}{
		{"int", 5, 5, true},
		{"float truncates", 9.99, 9, true},
		{"negative float", -2.5, -2, true},
		{"numeric string", "42", 42, true},
		{"leading digits", " 12abc", 12, true},
		{"signed string", "-7", -7, true},
		{"no digits", "abc", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
		{"json number", json.Number("8"), 8, true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Int(tt.value)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Int(%v) = (%d, %v), want (%d, %v)", tt.value, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestImages(t *testing.T) {
	if !(Images{}).IsEmpty() {
		t.Error("zero Images should be empty")
	}
	full := Images{Small: "a", Medium: "a", Large: "a", Huge: "a"}
	if !full.Complete() {
		t.Error("expected a complete ladder")
	}
	if (Images{Small: "a"}).Complete() {
		t.Error("a partial ladder should not be complete")
	}
}
