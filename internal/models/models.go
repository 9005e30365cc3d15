// package models defines the canonical record schema for the normalization layer
package models

import (
	"encoding/json"
	"maps"
	"math"
	"strconv"
	"strings"
)

// Canonical field names written by the formatter.
const (
	FieldURI         = "uri"
	FieldName        = "name"
	FieldSource      = "source"
	FieldDuration    = "duration"
	FieldTrackNumber = "track_number"
	FieldDiscNumber  = "disc_number"
	FieldDate        = "date"
	FieldImages      = "images"
	FieldAlbum       = "album"
	FieldTrack       = "track"
	FieldAddedBy     = "added_by"
	FieldAddedAt     = "added_at"
	FieldTLID        = "tlid"
)

// Record is a canonical track, album, artist or playlist.
//
// Keys are source-agnostic (duration, track_number, disc_number, date, images) plus every field the
// provider sent. Values are whatever [encoding/json] produces when decoding into any.
type Record map[string]any

// Clone returns a shallow copy of r. A nil record clones to nil.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// Has reports whether key is present, even if its value is null.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// String returns the value at key when it is a string.
func (r Record) String(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// URI returns the record's resource identifier, or "" when it has none.
func (r Record) URI() string {
	s, _ := r.String(FieldURI)
	return s
}

// Path resolves a dotted property path such as "followers.total".
//
// Traversal stops with ok=false as soon as a segment is missing or the current value is not an object.
func (r Record) Path(property string) (any, bool) {
	var current any = r
	for segment := range strings.SplitSeq(property, ".") {
		obj, ok := AsRecord(current)
		if !ok {
			return nil, false
		}
		value, present := obj[segment]
		if !present {
			return nil, false
		}
		current = value
	}
	return current, true
}

// AsRecord reports whether v is an object and returns it as a [Record].
func AsRecord(v any) (Record, bool) {
	switch obj := v.(type) {
	case Record:
		return obj, obj != nil
	case map[string]any:
		return Record(obj), obj != nil
	default:
		return nil, false
	}
}

// AsList reports whether v is a sequence and returns its elements.
func AsList(v any) ([]any, bool) {
	switch list := v.(type) {
	case []any:
		return list, true
	case []Record:
		out := make([]any, len(list))
		for i, r := range list {
			out[i] = r
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(list))
		for i, r := range list {
			out[i] = Record(r)
		}
		return out, true
	case []string:
		out := make([]any, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// Truthy applies JSON-style truthiness: null, false, "", 0 and NaN are falsy, everything else
// (including empty objects and lists) is truthy.
func Truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case string:
		return value != ""
	case float64:
		return value != 0 && !math.IsNaN(value)
	case float32:
		return value != 0 && !math.IsNaN(float64(value))
	case int:
		return value != 0
	case int64:
		return value != 0
	case int32:
		return value != 0
	case json.Number:
		f, err := value.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

// Stringify renders v the way a loosely typed client would print it.
// Whole floats print without a fraction, lists join with commas and null prints as "null".
func Stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return "null"
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(value), 'f', -1, 32)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case int32:
		return strconv.FormatInt(int64(value), 10)
	case json.Number:
		return value.String()
	case []any:
		parts := make([]string, len(value))
		for i, item := range value {
			if item == nil {
				continue
			}
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(value, ",")
	case map[string]any, Record:
		return "[object Object]"
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// Int coerces v to an integer on a best-effort basis.
//
// Floats truncate toward zero, strings parse their leading (optionally signed) digits after trimming
// whitespace. Booleans, objects, lists and null do not coerce.
func Int(v any) (int, bool) {
	switch value := v.(type) {
	case int:
		return value, true
	case int64:
		return int(value), true
	case int32:
		return int(value), true
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, false
		}
		return int(value), true
	case float32:
		return Int(float64(value))
	case json.Number:
		if i, err := value.Int64(); err == nil {
			return int(i), true
		}
		f, err := value.Float64()
		if err != nil {
			return 0, false
		}
		return Int(f)
	case string:
		return leadingInt(value)
	default:
		return 0, false
	}
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	i, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return i, true
}

// Images is the canonical four-bucket image size ladder.
// An empty string means the bucket is absent.
type Images struct {
	Small  string `json:"small,omitempty" toml:"small"`
	Medium string `json:"medium,omitempty" toml:"medium"`
	Large  string `json:"large,omitempty" toml:"large"`
	Huge   string `json:"huge,omitempty" toml:"huge"`
}

// IsEmpty reports whether every bucket is absent.
func (i Images) IsEmpty() bool {
	return i.Small == "" && i.Medium == "" && i.Large == "" && i.Huge == ""
}

// Complete reports whether every bucket is populated.
func (i Images) Complete() bool {
	return i.Small != "" && i.Medium != "" && i.Large != "" && i.Huge != ""
}

// Range describes a run of consecutive indexes starting at Start.
type Range struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}
