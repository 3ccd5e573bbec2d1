package opts

import (
	"github.com/walteh/foldermv/pkg/config"
	"github.com/walteh/foldermv/pkg/log"
	"github.com/walteh/foldermv/pkg/store"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config *config.Config
	Store  store.Store
	Logger *log.Logger
}
