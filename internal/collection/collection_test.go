package collection

import (
	"math/rand/v2"
	"reflect"
	"slices"
	"testing"

	"github.com/desertthunder/mixdeck/internal/models"
)

func names(records []models.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i], _ = r.String("name")
	}
	return out
}

func TestMergeDuplicates(t *testing.T) {
	t.Run("shallow merges later over earlier", func(t *testing.T) {
		got := MergeDuplicates([]models.Record{
			{"id": float64(1), "a": float64(1)},
			{"id": float64(1), "b": float64(2)},
		}, "id")

		want := []models.Record{{"id": float64(1), "a": float64(1), "b": float64(2)}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("MergeDuplicates() = %v, want %v", got, want)
		}
	})

	t.Run("later values win", func(t *testing.T) {
		got := MergeDuplicates([]models.Record{
			{"uri": "x", "name": "old"},
			{"uri": "y", "name": "other"},
			{"uri": "x", "name": "new"},
		}, "uri")

		if gotNames := names(got); !slices.Equal(gotNames, []string{"new", "other"}) {
			t.Errorf("expected first-occurrence order with merged values, got %v", gotNames)
		}
	})

	t.Run("inputs are not modified", func(t *testing.T) {
		first := models.Record{"id": "a", "x": 1}
		MergeDuplicates([]models.Record{first, {"id": "a", "y": 2}}, "id")
		if first.Has("y") {
			t.Error("first record should not gain merged fields")
		}
	})

	t.Run("missing key groups together", func(t *testing.T) {
		got := MergeDuplicates([]models.Record{{"a": 1}, {"b": 2}, nil}, "id")
		if len(got) != 1 {
			t.Fatalf("expected one group, got %d", len(got))
		}
	})

	t.Run("missing and null keys stay apart", func(t *testing.T) {
		got := MergeDuplicates([]models.Record{
			{"name": "missing"},
			{"id": nil, "name": "null"},
			{"name": "missing again"},
			{"id": nil, "name": "null again"},
		}, "id")

		if gotNames := names(got); !slices.Equal(gotNames, []string{"missing again", "null again"}) {
			t.Errorf("expected separate missing and null groups, got %v", gotNames)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := MergeDuplicates(nil, "id"); len(got) != 0 {
			t.Errorf("expected empty, got %v", got)
		}
	})
}

func TestRemoveDuplicates(t *testing.T) {
	tc := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "keeps first occurrence", input: []string{"a", "b", "a", "c", "b"}, want: []string{"a", "b", "c"}},
		{name: "no duplicates", input: []string{"x", "y"}, want: []string{"x", "y"}},
		{name: "empty", input: []string{}, want: []string{}},
		{name: "nil", input: nil, want: nil},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveDuplicates(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("RemoveDuplicates() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := RemoveDuplicates([]int{3, 3, 1}); !slices.Equal(got, []int{3, 1}) {
		t.Errorf("RemoveDuplicates(ints) = %v", got)
	}
}

func TestApplyFilter(t *testing.T) {
	items := []models.Record{
		{"name": "Radiohead"},
		{"name": "Portishead"},
		{"name": "Massive Attack"},
		{"name": ""},
		{"plays": float64(120)},
	}

	tc := []struct {
		name  string
		field string
		value string
		want  []string
	}{
		{name: "case insensitive substring", field: "name", value: "HEAD", want: []string{"Radiohead", "Portishead"}},
		{name: "no match", field: "name", value: "björk", want: []string{}},
		{name: "empty value matches every truthy field", field: "name", value: "", want: []string{"Radiohead", "Portishead", "Massive Attack"}},
		{name: "numbers are stringified", field: "plays", value: "12", want: []string{""}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := names(ApplyFilter(tt.field, tt.value, items))
			if !slices.Equal(got, tt.want) {
				t.Errorf("ApplyFilter() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("dotted paths are not resolved", func(t *testing.T) {
		nested := []models.Record{{"album": map[string]any{"name": "OK Computer"}}}
		if got := ApplyFilter("album.name", "ok", nested); len(got) != 0 {
			t.Errorf("expected no match, got %v", got)
		}
	})
}

func TestFindFirst(t *testing.T) {
	items := []models.Record{{"name": "Alpha"}, {"name": "alphabet"}}

	got, ok := FindFirst("name", "ALPHA", items)
	if !ok || got["name"] != "Alpha" {
		t.Errorf("FindFirst() = (%v, %v)", got, ok)
	}

	if _, ok := FindFirst("name", "zeta", items); ok {
		t.Error("expected no match")
	}
}

func TestSortItems(t *testing.T) {
	t.Run("strings ignore case", func(t *testing.T) {
		got := SortItems([]models.Record{{"name": "Bob"}, {"name": "alice"}}, "name", false, nil)
		if n := names(got); !slices.Equal(n, []string{"alice", "Bob"}) {
			t.Errorf("SortItems() = %v", n)
		}
	})

	t.Run("reverse", func(t *testing.T) {
		got := SortItems([]models.Record{{"name": "alice"}, {"name": "Bob"}, {"name": "carol"}}, "name", true, nil)
		if n := names(got); !slices.Equal(n, []string{"carol", "Bob", "alice"}) {
			t.Errorf("SortItems() = %v", n)
		}
	})

	t.Run("dotted numeric property", func(t *testing.T) {
		items := []models.Record{
			{"name": "b", "followers": map[string]any{"total": float64(50)}},
			{"name": "a", "followers": map[string]any{"total": float64(7)}},
			{"name": "c", "followers": map[string]any{"total": "300"}},
		}
		got := SortItems(items, "followers.total", false, nil)
		if n := names(got); !slices.Equal(n, []string{"a", "b", "c"}) {
			t.Errorf("SortItems() = %v", n)
		}
	})

	t.Run("true sorts first", func(t *testing.T) {
		items := []models.Record{
			{"name": "off", "saved": false},
			{"name": "missing"},
			{"name": "on", "saved": true},
		}
		got := SortItems(items, "saved", false, nil)
		if n := names(got); n[0] != "on" {
			t.Errorf("expected true first, got %v", n)
		}
	})

	t.Run("uri compares by source", func(t *testing.T) {
		items := []models.Record{
			{"name": "s", "uri": "spotify:track:a"},
			{"name": "l", "uri": "local:track:z"},
			{"name": "m", "uri": "m3u:list.m3u"},
		}
		got := SortItems(items, "uri", false, nil)
		if n := names(got); !slices.Equal(n, []string{"l", "m", "s"}) {
			t.Errorf("SortItems() = %v", n)
		}
	})

	t.Run("sort map puts later entries first", func(t *testing.T) {
		items := []models.Record{
			{"name": "l", "uri": "local:track:1"},
			{"name": "s", "uri": "spotify:track:1"},
			{"name": "x", "uri": "tunein:station:1"},
		}
		got := SortItems(items, "uri", false, []string{"local:", "spotify:"})
		if n := names(got); !slices.Equal(n, []string{"s", "l", "x"}) {
			t.Errorf("SortItems() = %v", n)
		}
	})

	t.Run("unmapped values tie", func(t *testing.T) {
		items := []models.Record{
			{"name": "a", "type": "x"},
			{"name": "b", "type": "y"},
		}
		got := SortItems(items, "type", false, []string{"z:"})
		if n := names(got); !slices.Equal(n, []string{"a", "b"}) {
			t.Errorf("ties should keep order, got %v", n)
		}
	})

	t.Run("missing string values tie", func(t *testing.T) {
		items := []models.Record{{"name": "zed"}, {"id": "no name"}, {"name": "amy"}}
		got := SortItems(items, "name", false, nil)
		if len(got) != 3 {
			t.Fatalf("expected 3 items, got %d", len(got))
		}
	})

	t.Run("input order untouched", func(t *testing.T) {
		items := []models.Record{{"name": "b"}, {"name": "a"}}
		SortItems(items, "name", false, nil)
		if items[0]["name"] != "b" {
			t.Error("input slice should not be reordered")
		}
	})

	t.Run("nil", func(t *testing.T) {
		if SortItems(nil, "name", false, nil) != nil {
			t.Error("expected nil")
		}
	})
}

func TestShuffle(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	got := ShuffleWith(rand.New(rand.NewPCG(1, 2)), items)

	if &got[0] != &items[0] {
		t.Error("expected the same backing array")
	}

	sorted := slices.Clone(got)
	slices.Sort(sorted)
	if !slices.Equal(sorted, []int{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("shuffle lost elements: %v", got)
	}

	if got := Shuffle([]string{}); len(got) != 0 {
		t.Error("expected empty")
	}
	if got := Shuffle([]string{"only"}); got[0] != "only" {
		t.Error("single element should stay")
	}
}

func TestCreateRange(t *testing.T) {
	tc := []struct {
		name    string
		indexes []int
		want    models.Range
		ok      bool
	}{
		{name: "gap ends the run", indexes: []int{5, 2, 3, 9}, want: models.Range{Start: 2, Length: 2}, ok: true},
		{name: "single", indexes: []int{4}, want: models.Range{Start: 4, Length: 1}, ok: true},
		{name: "consecutive", indexes: []int{3, 1, 2}, want: models.Range{Start: 1, Length: 3}, ok: true},
		{name: "starts at zero", indexes: []int{0, 5}, want: models.Range{Start: 0, Length: 1}, ok: true},
		{name: "duplicates skipped", indexes: []int{2, 2, 3}, want: models.Range{Start: 2, Length: 2}, ok: true},
		{name: "empty", indexes: nil, want: models.Range{}, ok: false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CreateRange(tt.indexes)
			if ok != tt.ok || got != tt.want {
				t.Errorf("CreateRange(%v) = (%+v, %v), want (%+v, %v)", tt.indexes, got, ok, tt.want, tt.ok)
			}
		})
	}

	input := []int{3, 1}
	CreateRange(input)
	if input[0] != 3 {
		t.Error("input should not be sorted in place")
	}
}

func TestArrayOf(t *testing.T) {
	got := ArrayOf("uri", []models.Record{{"uri": "a"}, {"name": "no uri"}, {"uri": "c"}})
	want := []any{"a", nil, "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ArrayOf() = %v, want %v", got, want)
	}
}

func TestIndexedRecords(t *testing.T) {
	index := map[string]models.Record{
		"spotify:artist:1": {"name": "one"},
		"spotify:artist:2": {"name": "two"},
	}

	got := IndexedRecords(index, []string{"spotify:artist:2", "missing", "spotify:artist:1"})
	if n := names(got); !slices.Equal(n, []string{"two", "one"}) {
		t.Errorf("IndexedRecords() = %v", n)
	}
}
