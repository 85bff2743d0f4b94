package hcl_adapter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/noisegridgo/internal/ctxlog"
	"github.com/vk/noisegridgo/internal/document"
	"github.com/vk/noisegridgo/internal/fsutil"
	"github.com/vk/noisegridgo/internal/ngohcl"
)

// Loader is the HCL implementation of document.Loader.
type Loader struct{}

var _ document.Loader = (*Loader)(nil)

// NewLoader creates a new HCL document loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl and .json file found under paths and merges them
// into one document. Nodes and edges keep file order. A graph block may
// appear in at most one file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*document.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, ".hcl", ".json")
	if err != nil {
		return nil, fmt.Errorf("finding graph files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl or .json graph files found in %v", paths)
	}
	logger.Debug("Discovered graph files.", "count", len(files))

	parser := hclparse.NewParser()
	doc := &document.Document{}
	var graphs hcl.Blocks

	for _, file := range files {
		var (
			f     *hcl.File
			diags hcl.Diagnostics
		)
		if filepath.Ext(file) == ".json" {
			f, diags = parser.ParseJSONFile(file)
		} else {
			f, diags = parser.ParseHCLFile(file)
		}
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse graph file %s: %w", file, diags)
		}

		content, remain, diags := f.Body.PartialContent(graphSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode graph file %s: %w", file, diags)
		}
		graphs = append(graphs, content.Blocks...)

		var root fileRoot
		if diags := gohcl.DecodeBody(remain, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode graph file %s: %w", file, diags)
		}

		for _, nb := range root.Nodes {
			node, diags := translateNode(ctx, nb)
			if diags.HasErrors() {
				return nil, fmt.Errorf("node %q in %s: %w", nb.ID, file, diags)
			}
			doc.Nodes = append(doc.Nodes, node)
		}
		for _, eb := range root.Edges {
			doc.Edges = append(doc.Edges, translateEdge(eb))
		}
	}

	graph, diags := ngohcl.FindUniqueBlock(graphs, "graph")
	if diags.HasErrors() {
		return nil, diags
	}
	if graph != nil {
		var gb graphBlock
		if diags := gohcl.DecodeBody(graph.Body, nil, &gb); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode graph block: %w", diags)
		}
		if gb.Output != nil {
			doc.OutputNodeID = *gb.Output
		}
	}

	logger.Debug("HCL loading complete.", "nodes", len(doc.Nodes), "edges", len(doc.Edges), "output", doc.OutputNodeID)
	return doc, nil
}
