package cmd

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/Kenengmathias/Hunter/internal/config"
	"github.com/Kenengmathias/Hunter/internal/ui"
)

type Context struct {
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Defaults
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode
}
