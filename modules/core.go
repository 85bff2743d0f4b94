// Package modules lists the node type modules compiled into the binary.
package modules

import (
	"github.com/vk/noisegridgo/internal/registry"
	"github.com/vk/noisegridgo/modules/combiner"
	"github.com/vk/noisegridgo/modules/generator"
	"github.com/vk/noisegridgo/modules/marker"
	"github.com/vk/noisegridgo/modules/modifier"
	"github.com/vk/noisegridgo/modules/terrain"
)

// Core returns every built-in module.
func Core() []registry.Module {
	return []registry.Module{
		&generator.Module{},
		&combiner.Module{},
		&modifier.Module{},
		&terrain.Module{},
		&marker.Module{},
	}
}

// NewRegistry returns a registry holding every built-in node type.
func NewRegistry() *registry.Registry {
	r := registry.New()
	r.RegisterAll(Core()...)
	return r
}
