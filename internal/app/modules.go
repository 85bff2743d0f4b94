package app

import (
	"github.com/vk/noisegridgo/internal/registry"
	"github.com/vk/noisegridgo/modules"
)

// coreModules is the definitive list of all modules that are compiled into
// the noisegridgo binary.
func coreModules() []registry.Module {
	return modules.Core()
}
