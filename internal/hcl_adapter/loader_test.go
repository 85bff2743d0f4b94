package hcl_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/noisegridgo/internal/document"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

const sampleHCL = `
graph {
  output = "out"
}

node "hills" {
  type = "perlin"
  property "frequency" {
    type  = number
    value = "0.5"
  }
  property "octaves" {
    type  = integer
    value = 4
  }
  property "label" {
    value = "plain"
  }
  editor_position = [10, 20]
}

node "out" {
  type = "output"
}

edge "hills" "out" {
  to_port = 0
}

future_block "ignored" {}
`

func TestLoader_LoadHCL(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"graph.hcl": sampleHCL})
	doc, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "out", doc.OutputNodeID)
	require.Len(t, doc.Nodes, 2)

	hills := doc.Nodes[0]
	assert.Equal(t, "hills", hills.ID)
	assert.Equal(t, "perlin", hills.Type)
	assert.Equal(t, []document.Property{
		{Key: "frequency", Value: "0.5", Type: document.TypeNumber},
		{Key: "octaves", Value: "4", Type: document.TypeInteger},
		{Key: "label", Value: "plain", Type: document.TypeText},
	}, hills.Properties)
	assert.Equal(t, 6, hills.DeclRange.Start.Line)

	require.Len(t, doc.Edges, 1)
	assert.Equal(t, document.Edge{SrcNode: "hills", DstNode: "out", DeclRange: doc.Edges[0].DeclRange}, *doc.Edges[0])
}

func TestLoader_LoadJSON(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"graph.json": `{
  "graph": {"output": "out"},
  "node": {
    "hills": {
      "type": "perlin",
      "property": {"seed": {"type": "integer", "value": "7"}}
    },
    "out": {"type": "output"}
  },
  "edge": {"hills": {"out": {"from_port": 0, "to_port": 0}}}
}`})

	doc, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "out", doc.OutputNodeID)
	n, ok := doc.Node("hills")
	require.True(t, ok)
	p, ok := n.Property("seed")
	require.True(t, ok)
	assert.Equal(t, document.Property{Key: "seed", Value: "7", Type: document.TypeInteger}, p)
	require.Len(t, doc.Edges, 1)
	assert.Equal(t, "out", doc.Edges[0].DstNode)
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		files map[string]string
	}{
		{name: "syntax error", files: map[string]string{"a.hcl": `node "x" {`}},
		{name: "missing node type", files: map[string]string{"a.hcl": `node "x" {}`}},
		{name: "bad property type", files: map[string]string{"a.hcl": `
node "x" {
  type = "perlin"
  property "f" {
    type  = vector
    value = "1"
  }
}`}},
		{name: "duplicate graph blocks", files: map[string]string{
			"a.hcl": `graph { output = "a" }`,
			"b.hcl": `graph { output = "b" }`,
		}},
		{name: "no files", files: map[string]string{"readme.txt": "hi"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dir := writeFiles(t, tc.files)
			_, err := NewLoader().Load(context.Background(), dir)
			assert.Error(t, err)
		})
	}
}

func TestLoader_MergesFiles(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"a.hcl": `node "a" { type = "perlin" }`,
		"b.hcl": `
graph { output = "b" }
node "b" { type = "output" }
edge "a" "b" {}`,
	})

	doc, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "a", doc.Nodes[0].ID)
	assert.Equal(t, "b", doc.OutputNodeID)
	require.Len(t, doc.Edges, 1)
}
