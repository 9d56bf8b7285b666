// Package world owns a loaded scene graph and finalizes it exactly once
// before it is handed to other consumers.
package world

import (
	"errors"
	"fmt"

	"proto-collapse/internal/alias"
	"proto-collapse/internal/collapse"
	"proto-collapse/internal/document"
	"proto-collapse/internal/scene"
)

// ErrAlreadyFinalized is returned by a second call to Finalize.
var ErrAlreadyFinalized = errors.New("world is already finalized")

// World owns one scene graph. It is not safe for concurrent use.
type World struct {
	graph     *scene.Graph
	vis       alias.Visibility
	labels    map[string]scene.NodeID
	version   string
	collapser *collapse.Collapser
	report    *collapse.Report
}

// New wraps graph. A nil vis means nothing is visible.
func New(graph *scene.Graph, vis alias.Visibility, config collapse.Config) *World {
	if vis == nil {
		vis = alias.Nothing
	}

	return &World{
		graph:     graph,
		vis:       vis,
		collapser: collapse.New(config),
	}
}

// FromDocument wraps a decoded document, keeping its labels.
func FromDocument(doc *document.Document, config collapse.Config) *World {
	w := New(doc.Graph, doc.Visibility, config)
	w.labels = doc.Labels
	w.version = doc.Version

	return w
}

// Load opens the scene file at path.
func Load(path string, opts document.DecodeOptions, config collapse.Config) (*World, error) {
	doc, err := document.Open(path, opts)
	if err != nil {
		return nil, err
	}

	return FromDocument(doc, config), nil
}

// Graph returns the owned graph.
func (w *World) Graph() *scene.Graph { return w.graph }

// Visibility returns the visibility the world was loaded with.
func (w *World) Visibility() alias.Visibility { return w.vis }

// Labels returns the node labels of the source document, if any.
func (w *World) Labels() map[string]scene.NodeID { return w.labels }

// Finalized reports whether Finalize has succeeded.
func (w *World) Finalized() bool { return w.report != nil }

// Report returns the report of the successful Finalize, or nil.
func (w *World) Report() *collapse.Report { return w.report }

// Finalize collapses redundant proto-parameter nodes. It succeeds at most
// once; a failed attempt leaves the graph untouched and may be retried.
func (w *World) Finalize() (*collapse.Report, error) {
	if w.report != nil {
		return w.report, ErrAlreadyFinalized
	}

	report, err := w.collapser.Collapse(w.graph, w.vis)
	if err != nil {
		return report, fmt.Errorf("finalize world: %w", err)
	}

	w.report = report

	return report, nil
}

// MustFinalize is like Finalize but panics on error.
func (w *World) MustFinalize() *collapse.Report {
	report, err := w.Finalize()
	if err != nil {
		panic(err)
	}

	return report
}

// Document returns the current state of the world as a document.
func (w *World) Document() *document.Document {
	doc := &document.Document{Version: w.version, Graph: w.graph, Labels: w.labels}
	if set, ok := w.vis.(*alias.VisibilitySet); ok {
		doc.Visibility = set
	}

	return doc
}
