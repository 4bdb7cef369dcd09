// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/RoknuzamanRokon/hitactl/internal/config"
	"github.com/RoknuzamanRokon/hitactl/internal/store"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args        []string
	Config      config.ConfigType
	Context     context.Context
	StartingDir string
	// Store is the process-wide resource cache, created once at startup and
	// injected into every command.
	Store *store.Store
}
