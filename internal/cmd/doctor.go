package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/Kenengmathias/Hunter/internal/preflight"
)

type DoctorCmd struct {
	Root string `help:"Project root holding .env, templates, and static." default:"."`
}

func (d *DoctorCmd) Run(ctx *Context) error {
	res := preflight.Run(d.Root)

	switch {
	case ctx.JSONOutput:
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Checks); err != nil {
			return err
		}
	case ctx.PlainText:
		for _, check := range res.Checks {
			fmt.Fprintf(ctx.Out, "%s\t%s\t%s\n", check.Name, check.Status, check.Detail)
		}
	default:
		for _, check := range res.Checks {
			line := fmt.Sprintf("%-10s %s", check.Name+":", check.Detail)
			switch check.Status {
			case preflight.StatusOK:
				ctx.UI.Successf("%s", line)
			case preflight.StatusWarn:
				ctx.UI.Warnf("%s", line)
			default:
				ctx.UI.Errorf("%s", line)
			}
		}
	}

	if res.Failed() {
		return fmt.Errorf("startup checks failed")
	}
	return nil
}
