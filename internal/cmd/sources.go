package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kenengmathias/Hunter/internal/config"
	"github.com/Kenengmathias/Hunter/internal/models"
	"github.com/Kenengmathias/Hunter/internal/network"
	"github.com/Kenengmathias/Hunter/internal/source"
)

type SourcesCmd struct {
	Query    string `help:"Probe query." default:"Developer"`
	Location string `help:"Probe location." default:"Lagos"`
	Limit    int    `help:"Results per source." default:"3"`
	Timeout  int    `help:"Per-source timeout in seconds." default:"30"`
	Proxies  string `help:"Comma-separated proxy URLs." env:"HUNTER_PROXIES"`
	EnvFile  string `help:"Path to the env file with API keys." default:".env"`
}

func (s *SourcesCmd) Run(ctx *Context) error {
	env, err := config.LoadEnvLenient(s.EnvFile)
	if err != nil {
		return err
	}

	proxies, err := config.LoadProxies(s.Proxies, env.Proxies)
	if err != nil {
		return err
	}
	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, 10*time.Minute)
		if err != nil {
			return err
		}
	}

	registry, err := source.Registry(env.Credentials(), rotator)
	if err != nil {
		return err
	}

	params := models.SearchParams{
		Keywords: s.Query,
		Location: s.Location,
		JobType:  models.JobTypeAll,
		Limit:    s.Limit,
	}

	ctx.UI.Infof("Probing %q in %q", s.Query, s.Location)

	failed := 0
	for _, key := range source.Keys() {
		src := registry[key]

		probeCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.Timeout)*time.Second)
		jobs, err := src.Search(probeCtx, params)
		cancel()

		switch {
		case errors.Is(err, source.ErrNotConfigured):
			ctx.UI.Warnf("%s: skipped, set %s", src.Name(), strings.Join(source.RequiredEnv(key), ", "))
		case err != nil:
			failed++
			ctx.UI.Errorf("%s failed: %v", src.Name(), err)
		default:
			ctx.UI.Successf("%s: %d jobs", src.Name(), len(jobs))
			if len(jobs) > 0 {
				ctx.UI.Infof("   Sample: %s at %s", jobs[0].Title, firstNonEmpty(jobs[0].Company, "Unknown"))
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("sources failed: %d", failed)
	}
	return nil
}
