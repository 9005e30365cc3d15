// package library assembles the library view from the local daemon and the cloud catalog
package library

import (
	"slices"

	"github.com/desertthunder/mixdeck/internal/collection"
	"github.com/desertthunder/mixdeck/internal/formatter"
	"github.com/desertthunder/mixdeck/internal/loading"
	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/uri"
)

// Source selects which backends contribute to the view.
type Source string

const (
	SourceAll     Source = "all"
	SourceLocal   Source = Source(uri.SourceLocal)
	SourceSpotify Source = Source(uri.SourceSpotify)
)

// Sources lists the accepted [Source] values.
var Sources = []Source{SourceAll, SourceLocal, SourceSpotify}

// ParseSource validates s; an empty string selects every source.
func ParseSource(s string) (Source, bool) {
	if s == "" {
		return SourceAll, true
	}
	source := Source(s)
	return source, slices.Contains(Sources, source)
}

func (s Source) includesLocal() bool { return s == SourceAll || s == SourceLocal }
func (s Source) includesCloud() bool { return s == SourceAll || s == SourceSpotify }

// State tells the presentation layer what to render.
type State string

const (
	StateData    State = "data"
	StateLoading State = "loading"
	StateEmpty   State = "empty"
)

// Options describes one library view.
type Options struct {
	Source Source

	// LocalURIs are library references reported by the local daemon. Unresolved ones still show as placeholders.
	LocalURIs []string
	// CloudURIs are cloud library references. Only those present in Index are shown.
	CloudURIs []string
	// Index holds every resolved record by uri.
	Index map[string]models.Record

	Sort    string
	Reverse bool
	SortMap []string

	// Filter matches names case-insensitively; empty keeps everything.
	Filter string
	// Limit caps the rendered items; zero or less shows everything.
	Limit int

	Queue       loading.Queue
	LoadingKeys []string
}

// View is the assembled library page.
type View struct {
	Items []models.Record `json:"items"`
	// Total counts the items after filtering, before the limit.
	Total int   `json:"total"`
	State State `json:"state"`
	// More reports whether the limit hid items.
	More bool `json:"more"`
}

// Build assembles the view: local references (as records or placeholders), then indexed cloud references,
// then sort, then name filter, then limit.
func Build(opts Options) View {
	source := opts.Source
	if source == "" {
		source = SourceAll
	}

	items := make([]models.Record, 0, len(opts.LocalURIs)+len(opts.CloudURIs))

	if source.includesLocal() {
		for _, u := range opts.LocalURIs {
			if record, ok := opts.Index[u]; ok {
				items = append(items, record)
			} else {
				items = append(items, formatter.Placeholder(u))
			}
		}
	}

	if source.includesCloud() {
		items = append(items, collection.IndexedRecords(opts.Index, opts.CloudURIs)...)
	}

	if opts.Sort != "" {
		items = collection.SortItems(items, opts.Sort, opts.Reverse, opts.SortMap)
	}

	if opts.Filter != "" {
		items = collection.ApplyFilter(models.FieldName, opts.Filter, items)
	}

	view := View{Items: items, Total: len(items)}
	if opts.Limit > 0 && opts.Limit < len(items) {
		view.Items = items[:opts.Limit]
		view.More = true
	}

	switch {
	case len(view.Items) > 0:
		view.State = StateData
	case loading.IsLoading(opts.Queue, opts.LoadingKeys...):
		view.State = StateLoading
	default:
		view.State = StateEmpty
	}

	return view
}
