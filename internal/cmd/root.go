package cmd

import (
	"github.com/alecthomas/kong"

	"github.com/Kenengmathias/Hunter/internal/source"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version   VersionCmd      `cmd:"" help:"Print version."`
	Config    ConfigCmd       `cmd:"" help:"Manage configuration."`
	Setup     SetupCmd        `cmd:"" help:"Create the runtime layout, env file, and default assets."`
	Assets    AssetsCmd       `cmd:"" help:"Rewrite the generated static assets."`
	Run       RunCmd          `cmd:"" help:"Check preconditions and serve the web UI."`
	Doctor    DoctorCmd       `cmd:"" help:"Report every startup check without serving."`
	Search    SearchCmd       `cmd:"" help:"Search job listings across all sources."`
	Jooble    SourceSearchCmd `cmd:"" name:"jooble" help:"Search Jooble."`
	Adzuna    SourceSearchCmd `cmd:"" name:"adzuna" help:"Search Adzuna."`
	JSearch   SourceSearchCmd `cmd:"" name:"jsearch" help:"Search JSearch."`
	Indeed    SourceSearchCmd `cmd:"" name:"indeed" help:"Search Indeed."`
	Jobberman SourceSearchCmd `cmd:"" name:"jobberman" help:"Search Jobberman."`
	Sources   SourcesCmd      `cmd:"" help:"Probe every source with a canned query."`
	Proxies   ProxiesCmd      `cmd:"" help:"Proxy utilities."`
	Seen      SeenCmd         `cmd:"" help:"Seen jobs utilities."`
	Smoke     SmokeCmd        `cmd:"" help:"Fetch a page with the stealth client and print its title."`
}

func NewCLI() *CLI {
	return &CLI{
		Jooble:    SourceSearchCmd{Source: source.KeyJooble},
		Adzuna:    SourceSearchCmd{Source: source.KeyAdzuna},
		JSearch:   SourceSearchCmd{Source: source.KeyJSearch},
		Indeed:    SourceSearchCmd{Source: source.KeyIndeed},
		Jobberman: SourceSearchCmd{Source: source.KeyJobberman},
	}
}
