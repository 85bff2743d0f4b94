package hcl_adapter

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/noisegridgo/internal/ctxlog"
	"github.com/vk/noisegridgo/internal/document"
	"github.com/zclconf/go-cty/cty"
)

// Writer is the HCL implementation of document.Writer. It always emits
// native syntax.
type Writer struct{}

var _ document.Writer = (*Writer)(nil)

// NewWriter creates a new HCL document writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write serializes doc so that Loader reads back an equivalent document.
func (w *Writer) Write(ctx context.Context, out io.Writer, doc *document.Document) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	if doc.OutputNodeID != "" {
		g := body.AppendNewBlock("graph", nil)
		g.Body().SetAttributeValue("output", cty.StringVal(doc.OutputNodeID))
		body.AppendNewline()
	}

	for _, n := range doc.Nodes {
		nb := body.AppendNewBlock("node", []string{n.ID}).Body()
		nb.SetAttributeValue("type", cty.StringVal(n.Type))
		for _, p := range n.Properties {
			pb := nb.AppendNewBlock("property", []string{p.Key}).Body()
			pb.SetAttributeTraversal("type", hcl.Traversal{hcl.TraverseRoot{Name: p.Type.String()}})
			pb.SetAttributeValue("value", cty.StringVal(p.Value))
		}
		body.AppendNewline()
	}

	for _, e := range doc.Edges {
		eb := body.AppendNewBlock("edge", []string{e.SrcNode, e.DstNode}).Body()
		eb.SetAttributeValue("from_port", cty.NumberIntVal(int64(e.SrcPort)))
		eb.SetAttributeValue("to_port", cty.NumberIntVal(int64(e.DstPort)))
	}

	n, err := f.WriteTo(out)
	if err != nil {
		return fmt.Errorf("writing graph document: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Wrote graph document.", "bytes", n, "nodes", len(doc.Nodes), "edges", len(doc.Edges))
	return nil
}
