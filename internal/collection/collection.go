// package collection merges, dedupes, filters, sorts, shuffles and projects collections of canonical records
package collection

import (
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/charlievieth/strcase"

	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/uri"
)

// MergeDuplicates collapses records that share the same value at key.
//
// Later records shallow-merge over earlier ones. The result is ordered by the first occurrence of each key,
// which is not necessarily the original relative order of the merged fields. Records lacking key share one
// "undefined" group, apart from records whose key is null. Keys compare by their stringified form, so 1 and "1" collide.
func MergeDuplicates(list []models.Record, key string) []models.Record {
	groups := make(map[string]models.Record, len(list))
	order := make([]string, 0, len(list))

	for _, item := range list {
		if item == nil {
			continue
		}
		k := groupKey(item, key)
		merged, found := groups[k]
		if !found {
			merged = make(models.Record, len(item))
			order = append(order, k)
		}
		maps.Copy(merged, item)
		groups[k] = merged
	}

	merged := make([]models.Record, 0, len(order))
	for _, k := range order {
		merged = append(merged, groups[k])
	}
	return merged
}

func groupKey(item models.Record, key string) string {
	value, present := item[key]
	if !present {
		return "undefined"
	}
	return models.Stringify(value)
}

// RemoveDuplicates keeps the first occurrence of every value, preserving order.
func RemoveDuplicates[T comparable](items []T) []T {
	if items == nil {
		return nil
	}
	seen := make(map[T]struct{}, len(items))
	unique := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		unique = append(unique, item)
	}
	return unique
}

func matches(item models.Record, field, value string) bool {
	v := item[field]
	return models.Truthy(v) && strcase.Contains(models.Stringify(v), value)
}

// ApplyFilter returns the records whose field contains value, ignoring case.
//
// Only single-level fields are supported; falsy field values never match.
func ApplyFilter(field, value string, items []models.Record) []models.Record {
	results := make([]models.Record, 0)
	for _, item := range items {
		if matches(item, field, value) {
			results = append(results, item)
		}
	}
	return results
}

// FindFirst returns the first record that [ApplyFilter] would keep.
func FindFirst(field, value string, items []models.Record) (models.Record, bool) {
	for _, item := range items {
		if matches(item, field, value) {
			return item, true
		}
	}
	return nil, false
}

// sortValue resolves property on item; a missing segment yields false.
func sortValue(item models.Record, property string) any {
	value, ok := item.Path(property)
	if !ok {
		value = false
	}
	if property == models.FieldURI {
		s, _ := value.(string)
		if source, ok := uri.Source(s); ok {
			return source
		}
		return false
	}
	return value
}

// compare orders a before b when it returns a negative number.
//
// With a sort map, values later in the map come first and unmapped values (index -1) tie with each other.
// Otherwise booleans place true first, strings compare case-insensitively (an empty or non-string side ties)
// and everything else compares by integer coercion (a value that does not coerce ties).
func compare(a, b any, sortMap []string) int {
	if sortMap != nil {
		ai := slices.Index(sortMap, models.Stringify(a)+":")
		bi := slices.Index(sortMap, models.Stringify(b)+":")
		switch {
		case ai < bi:
			return 1
		case ai > bi:
			return -1
		}
		return 0
	}

	switch av := a.(type) {
	case bool:
		bv := models.Truthy(b)
		switch {
		case av && !bv:
			return -1
		case !av && bv:
			return 1
		}
		return 0
	case string:
		bv, ok := b.(string)
		if av == "" || !ok || bv == "" {
			return 0
		}
		return strcase.Compare(av, bv)
	default:
		ai, aok := models.Int(a)
		bi, bok := models.Int(b)
		if !aok || !bok {
			return 0
		}
		switch {
		case ai > bi:
			return 1
		case ai < bi:
			return -1
		}
		return 0
	}
}

// SortItems returns a sorted copy of items ordered by the dotted property path.
//
// Sorting by "uri" compares the source namespace of each URI. When reverse is set the sorted copy is
// reversed afterwards, so ties keep their mirrored order. The input slice is not reordered.
func SortItems(items []models.Record, property string, reverse bool, sortMap []string) []models.Record {
	if items == nil {
		return nil
	}
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b models.Record) int {
		return compare(sortValue(a, property), sortValue(b, property), sortMap)
	})
	if reverse {
		slices.Reverse(sorted)
	}
	return sorted
}

// Shuffle permutes items in place with a Fisher-Yates pass and returns the same slice.
func Shuffle[T any](items []T) []T {
	return ShuffleWith(nil, items)
}

// ShuffleWith is [Shuffle] with an explicit source of randomness; a nil r uses the global source.
func ShuffleWith[T any](r *rand.Rand, items []T) []T {
	intN := rand.IntN
	if r != nil {
		intN = r.IntN
	}
	for i := len(items) - 1; i > 0; i-- {
		j := intN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
	return items
}

// CreateRange describes the first run of consecutive indexes, after sorting them ascending.
//
// Duplicates inside the run are skipped and everything after the first gap is ignored.
// An empty input has no range.
func CreateRange(indexes []int) (models.Range, bool) {
	if len(indexes) == 0 {
		return models.Range{}, false
	}
	sorted := slices.Clone(indexes)
	slices.Sort(sorted)

	r := models.Range{Start: sorted[0], Length: 1}
	previous := sorted[0]
	for _, index := range sorted[1:] {
		if index != previous+1 {
			if index == previous {
				continue
			}
			break
		}
		r.Length++
		previous = index
	}
	return r, true
}

// ArrayOf projects property from every item, index-aligned with items.
// Missing fields and nil items project to nil.
func ArrayOf(property string, items []models.Record) []any {
	values := make([]any, len(items))
	for i, item := range items {
		values[i] = item[property]
	}
	return values
}

// IndexedRecords returns the records of index found at uris, in uri order. Unknown uris are skipped.
func IndexedRecords(index map[string]models.Record, uris []string) []models.Record {
	records := make([]models.Record, 0, len(uris))
	for _, u := range uris {
		if record, ok := index[u]; ok {
			records = append(records, record)
		}
	}
	return records
}
