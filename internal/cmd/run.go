package cmd

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Kenengmathias/Hunter/internal/aggregator"
	"github.com/Kenengmathias/Hunter/internal/network"
	"github.com/Kenengmathias/Hunter/internal/preflight"
	"github.com/Kenengmathias/Hunter/internal/source"
	"github.com/Kenengmathias/Hunter/internal/web"
)

type RunCmd struct {
	Root string `help:"Project root holding .env, templates, and static." default:"."`
	Host string `help:"Override the HOST from the env file."`
	Port int    `help:"Override the PORT from the env file."`
}

func (r *RunCmd) Run(ctx *Context) error {
	res := preflight.Run(r.Root)
	for _, warn := range res.Warnings() {
		ctx.UI.Warnf("%s", warn.Detail)
	}
	if first, ok := res.FirstFailure(); ok {
		return errors.New(first.Detail)
	}

	env := res.Env
	if env.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	logger := serverLogger(ctx, r.Root)

	var rotator *network.Rotator
	if len(env.Proxies) > 0 {
		var err error
		rotator, err = network.NewRotator(env.Proxies, 10*time.Minute)
		if err != nil {
			return err
		}
	}

	registry, err := source.Registry(env.Credentials(), rotator)
	if err != nil {
		return err
	}
	agg := aggregator.New(registry, logger)

	srv, err := web.New(r.Root, agg, logger, env.Debug)
	if err != nil {
		return err
	}

	host := env.Host
	if strings.TrimSpace(r.Host) != "" {
		host = r.Host
	}
	port := env.Port
	if r.Port != 0 {
		port = r.Port
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(runCtx, addr)
}

// serverLogger tees the server log to stderr and logs/hunter.log. A
// log file that cannot be opened downgrades to stderr only.
func serverLogger(ctx *Context, root string) zerolog.Logger {
	writers := []io.Writer{ctx.Err}

	logPath := filepath.Join(root, "logs", "hunter.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			writers = append(writers, file)
		} else if ctx.UI != nil {
			ctx.UI.Warnf("log file unavailable: %v", err)
		}
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
}
