package modules

import (
	"github.com/owow-nl/wizkid-manager/modules/core"
	"github.com/owow-nl/wizkid-manager/modules/wizkid"
	"github.com/owow-nl/wizkid-manager/pkg/application"
)

// BuiltInModules lists every module in registration order; core must come
// first because wizkid resolves core services at registration time.
var BuiltInModules = []application.Module{
	core.NewModule(),
	wizkid.NewModule(),
}

func Load(app application.Application, mods ...application.Module) error {
	for _, module := range mods {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
