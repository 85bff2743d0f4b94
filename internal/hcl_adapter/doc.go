// Package hcl_adapter reads and writes graph documents in HCL native syntax
// and in the HCL JSON variant.
//
// A document looks like:
//
//	graph {
//	  output = "terrain"
//	}
//
//	node "hills" {
//	  type = "perlin"
//	  property "frequency" {
//	    type  = number
//	    value = "0.5"
//	  }
//	}
//
//	edge "hills" "terrain" {
//	  from_port = 0
//	  to_port   = 0
//	}
//
// Unknown blocks and attributes are ignored so that documents written by
// newer tools still load.
package hcl_adapter
