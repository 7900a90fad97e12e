package cmd

import (
	"strings"

	"github.com/Kenengmathias/Hunter/internal/assets"
)

type SetupCmd struct {
	Root  string `help:"Project root to set up." default:"."`
	Force bool   `help:"Overwrite the template and static assets even when present."`
}

type AssetsCmd struct {
	Root string `help:"Project root holding the static directory." default:"."`
}

func (s *SetupCmd) Run(ctx *Context) error {
	if err := assets.EnsureDirs(s.Root); err != nil {
		return err
	}

	var created []string

	wroteTemplate, err := assets.WriteTemplate(s.Root, s.Force)
	if err != nil {
		return err
	}
	if wroteTemplate {
		created = append(created, assets.TemplatePath)
	}

	written, err := assets.WriteStatic(s.Root, s.Force)
	if err != nil {
		return err
	}
	created = append(created, written...)

	wroteExample, err := assets.WriteEnvExample(s.Root, s.Force)
	if err != nil {
		return err
	}
	if wroteExample {
		created = append(created, assets.EnvExamplePath)
	}

	seeded, err := assets.SeedEnv(s.Root)
	if err != nil {
		return err
	}
	if seeded {
		created = append(created, assets.EnvPath)
	}

	if len(created) == 0 {
		ctx.UI.Infof("Everything already in place.")
		return nil
	}

	ctx.UI.Infof("Created: %s", strings.Join(created, ", "))
	if seeded {
		ctx.UI.Warnf("Add your API keys to %s before starting the server.", assets.EnvPath)
	}
	return nil
}

func (a *AssetsCmd) Run(ctx *Context) error {
	if err := assets.EnsureDirs(a.Root); err != nil {
		return err
	}
	written, err := assets.WriteStatic(a.Root, true)
	if err != nil {
		return err
	}
	ctx.UI.Infof("Rewrote: %s", strings.Join(written, ", "))
	return nil
}
