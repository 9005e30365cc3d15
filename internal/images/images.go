// Package images folds provider-specific image collections into the canonical small/medium/large/huge
// size ladder.
//
// Raw elements are first decoded into a closed set of [Kind] variants by probing the fields that
// characterize each provider's shape, then bucketed per variant. Unrecognized elements are ignored.
package images

import (
	"github.com/desertthunder/mixdeck/internal/models"
)

// Kind is the decoded variant of a raw image element.
type Kind int

const (
	KindUnknown Kind = iota
	KindModel        // local daemon typed object: {"__model__": "Image", "url", "width"}
	KindString       // bare URL string
	KindWidth        // cloud catalog object: {"url", "width", "height"}
	KindSized        // metadata provider object: {"#text", "size"}
)

func (k Kind) String() string {
	switch k {
	case KindModel:
		return "model"
	case KindString:
		return "string"
	case KindWidth:
		return "width"
	case KindSized:
		return "sized"
	default:
		return "unknown"
	}
}

// Width thresholds separating the small, medium and large buckets.
const (
	smallBelow  = 400
	mediumBelow = 800
	largeBelow  = 1000
)

// Descriptor is one decoded image element.
type Descriptor struct {
	Kind     Kind
	URL      string
	Width    int
	HasWidth bool
	Size     string
}

// Classify decodes a raw image element into a [Descriptor].
func Classify(v any) Descriptor {
	if s, ok := v.(string); ok {
		return Descriptor{Kind: KindString, URL: s}
	}

	obj, ok := models.AsRecord(v)
	if !ok {
		return Descriptor{Kind: KindUnknown}
	}

	url, _ := obj.String("url")
	width, hasWidth := widthOf(obj)

	if model, _ := obj.String("__model__"); model == "Image" {
		return Descriptor{Kind: KindModel, URL: url, Width: width, HasWidth: hasWidth}
	}
	if hasWidth {
		return Descriptor{Kind: KindWidth, URL: url, Width: width, HasWidth: true}
	}
	if obj.Has("size") {
		size, _ := obj.String("size")
		text, _ := obj.String("#text")
		return Descriptor{Kind: KindSized, URL: text, Size: size}
	}
	return Descriptor{Kind: KindUnknown}
}

// widthOf reads the width field. A present but null or non-numeric width counts as zero.
func widthOf(obj models.Record) (int, bool) {
	raw, present := obj["width"]
	if !present {
		return 0, false
	}
	width, _ := models.Int(raw)
	return width, true
}

// bucket returns the ladder slot an image of this width belongs to.
func bucket(sizes *models.Images, width int) *string {
	switch {
	case width < smallBelow:
		return &sizes.Small
	case width < mediumBelow:
		return &sizes.Medium
	case width < largeBelow:
		return &sizes.Large
	default:
		return &sizes.Huge
	}
}

func place(sizes *models.Images, d Descriptor) {
	if d.URL == "" {
		return
	}
	switch d.Kind {
	case KindModel:
		// Typed images without a width are assumed to be full size.
		if !d.HasWidth {
			sizes.Huge = d.URL
			return
		}
		*bucket(sizes, d.Width) = d.URL
	case KindWidth:
		*bucket(sizes, d.Width) = d.URL
	case KindString:
		sizes.Small = d.URL
	case KindSized:
		switch d.Size {
		case "mega", "extralarge", "large":
			sizes.Medium = d.URL
		case "medium", "small":
			sizes.Small = d.URL
		}
	}
}

// FromDescriptors buckets decoded images and fills the gaps in the ladder.
// Later images win within a bucket. An empty input yields an empty ladder.
func FromDescriptors(descriptors []Descriptor) models.Images {
	var sizes models.Images
	if len(descriptors) == 0 {
		return sizes
	}
	for _, d := range descriptors {
		place(&sizes, d)
	}
	return inherit(sizes)
}

// Normalize converts any supported image collection into the canonical ladder.
//
// Accepted inputs are sequences of raw elements, the keyed object form
// ({"small": {"url": ...}, ...}), and an already-normalized [models.Images].
// Anything else yields an empty ladder.
func Normalize(raw any) models.Images {
	switch v := raw.(type) {
	case nil:
		return models.Images{}
	case models.Images:
		return inherit(v)
	case *models.Images:
		if v == nil {
			return models.Images{}
		}
		return inherit(*v)
	case []Descriptor:
		return FromDescriptors(v)
	}

	if list, ok := models.AsList(raw); ok {
		descriptors := make([]Descriptor, len(list))
		for i, item := range list {
			descriptors[i] = Classify(item)
		}
		return FromDescriptors(descriptors)
	}

	if obj, ok := models.AsRecord(raw); ok {
		return fromKeyed(obj)
	}
	return models.Images{}
}

// fromKeyed copies the url of each nested size object.
func fromKeyed(obj models.Record) models.Images {
	var sizes models.Images
	for key, slot := range map[string]*string{
		"small":  &sizes.Small,
		"medium": &sizes.Medium,
		"large":  &sizes.Large,
		"huge":   &sizes.Huge,
	} {
		if nested, ok := models.AsRecord(obj[key]); ok {
			*slot, _ = nested.String("url")
		}
	}
	return inherit(sizes)
}

// inherit fills absent buckets from their neighbours so any single-size consumer gets an image
// whenever one existed.
func inherit(sizes models.Images) models.Images {
	if sizes.Small == "" {
		sizes.Small = firstOf(sizes.Medium, sizes.Large, sizes.Huge)
	}
	if sizes.Medium == "" {
		sizes.Medium = firstOf(sizes.Large, sizes.Huge, sizes.Small)
	}
	if sizes.Large == "" {
		sizes.Large = sizes.Medium
	}
	if sizes.Huge == "" {
		sizes.Huge = sizes.Large
	}
	return sizes
}

func firstOf(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
