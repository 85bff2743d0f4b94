package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// graphSchema extracts the graph block so it can be checked for uniqueness.
var graphSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "graph"}},
}

// fileRoot is decoded from everything left after the graph block.
type fileRoot struct {
	Nodes  []*nodeBlock `hcl:"node,block"`
	Edges  []*edgeBlock `hcl:"edge,block"`
	Remain hcl.Body     `hcl:",remain"`
}

type graphBlock struct {
	Output *string  `hcl:"output,optional"`
	Remain hcl.Body `hcl:",remain"`
}

type nodeBlock struct {
	ID         string           `hcl:"id,label"`
	Type       string           `hcl:"type"`
	Properties []*propertyBlock `hcl:"property,block"`
	DefRange   hcl.Range        `hcl:",def_range"`
	Remain     hcl.Body         `hcl:",remain"`
}

type propertyBlock struct {
	Key    string         `hcl:"key,label"`
	Type   hcl.Expression `hcl:"type,optional"`
	Value  hcl.Expression `hcl:"value"`
	Remain hcl.Body       `hcl:",remain"`
}

type edgeBlock struct {
	From     string    `hcl:"from,label"`
	To       string    `hcl:"to,label"`
	FromPort *int      `hcl:"from_port,optional"`
	ToPort   *int      `hcl:"to_port,optional"`
	DefRange hcl.Range `hcl:",def_range"`
	Remain   hcl.Body  `hcl:",remain"`
}
