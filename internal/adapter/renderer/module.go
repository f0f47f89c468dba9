package renderer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/zaidkh/tijara/internal/config"
)

// Module exposes the renderer client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.RendererAddress, p.Config.Store, p.Logger)
}
