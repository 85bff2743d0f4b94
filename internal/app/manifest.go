package app

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/noisegridgo/internal/compiler"
	"github.com/vk/noisegridgo/internal/export"
	"github.com/zclconf/go-cty/cty"
)

// ManifestName is the file describing a run's output, written next to the images.
const ManifestName = "manifest.hcl"

var channelNames = [export.LayersPerImage]string{"r", "g", "b", "a"}

// writeManifest records the world, every tile's images and where each
// layer's weights live, in HCL.
func writeManifest(w io.Writer, cfg *Config, layers []compiler.Layer, tiles []tileFiles) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	world := body.AppendNewBlock("world", nil).Body()
	world.SetAttributeValue("size", cty.NumberFloatVal(cfg.WorldSize))
	world.SetAttributeValue("tile_size", cty.NumberFloatVal(cfg.TileSize))
	world.SetAttributeValue("resolution", cty.NumberIntVal(int64(cfg.Resolution)))
	world.SetAttributeValue("format", cty.StringVal(string(cfg.Format)))
	world.SetAttributeValue("blend_order", cty.StringVal(cfg.BlendOrder.String()))
	world.SetAttributeValue("seed", cty.NumberIntVal(cfg.Seed))

	for i, l := range layers {
		body.AppendNewline()
		lb := body.AppendNewBlock("layer", []string{l.NodeID}).Body()
		lb.SetAttributeValue("priority", cty.NumberIntVal(int64(l.Priority)))
		lb.SetAttributeValue("texture", cty.StringVal(l.Texture.Name))
		lb.SetAttributeValue("tile_size", cty.NumberFloatVal(l.Tiling.Size))
		lb.SetAttributeValue("tile_offset_x", cty.NumberFloatVal(l.Tiling.OffsetX))
		lb.SetAttributeValue("tile_offset_z", cty.NumberFloatVal(l.Tiling.OffsetZ))
		lb.SetAttributeValue("image", cty.NumberIntVal(int64(i/export.LayersPerImage)))
		lb.SetAttributeValue("channel", cty.StringVal(channelNames[i%export.LayersPerImage]))
	}

	for _, t := range tiles {
		body.AppendNewline()
		tb := body.AppendNewBlock("tile", []string{fmt.Sprint(t.Tile.X), fmt.Sprint(t.Tile.Z)}).Body()
		tb.SetAttributeValue("min_x", cty.NumberFloatVal(t.Tile.Rect.MinX))
		tb.SetAttributeValue("min_z", cty.NumberFloatVal(t.Tile.Rect.MinZ))
		tb.SetAttributeValue("max_x", cty.NumberFloatVal(t.Tile.Rect.MaxX))
		tb.SetAttributeValue("max_z", cty.NumberFloatVal(t.Tile.Rect.MaxZ))
		tb.SetAttributeValue("heights", cty.StringVal(t.Heights))
		weights := cty.ListValEmpty(cty.String)
		if len(t.Weights) > 0 {
			vals := make([]cty.Value, len(t.Weights))
			for i, name := range t.Weights {
				vals[i] = cty.StringVal(name)
			}
			weights = cty.ListVal(vals)
		}
		tb.SetAttributeValue("weights", weights)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
