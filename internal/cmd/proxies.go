package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Kenengmathias/Hunter/internal/config"
	"github.com/Kenengmathias/Hunter/internal/network"
)

type ProxiesCmd struct {
	Check ProxyCheckCmd `cmd:"" help:"Validate proxies against a target URL."`
}

type ProxyCheckCmd struct {
	Target  string `help:"Target URL for the probe." default:"http://httpbin.org/ip"`
	Timeout int    `help:"Per-proxy timeout in seconds." default:"10"`
	Workers int    `help:"Number of concurrent checks." default:"5"`
	Proxies string `help:"Comma-separated proxy URLs to check instead of the configured list."`
	EnvFile string `help:"Path to the env file with PROXY_LIST." default:".env"`
	Save    string `help:"Write working proxies as a PROXY_LIST line to this file." placeholder:"FILE"`
}

func (p *ProxyCheckCmd) Run(ctx *Context) error {
	env, err := config.LoadEnvLenient(p.EnvFile)
	if err != nil {
		return err
	}
	proxies, err := config.LoadProxies(p.Proxies, env.Proxies)
	if err != nil {
		return err
	}
	if len(proxies) == 0 {
		return fmt.Errorf("no proxies configured")
	}

	timeout := time.Duration(p.Timeout) * time.Second
	results := network.CheckProxies(context.Background(), proxies, p.Target, timeout, p.Workers)

	if err := writeProxyResults(ctx, results); err != nil {
		return err
	}

	working := network.WorkingInputs(results)
	if ctx.UI != nil {
		ctx.UI.Infof("Working proxies: %d/%d", len(working), len(results))
	}

	if strings.TrimSpace(p.Save) == "" {
		return nil
	}
	if len(working) == 0 {
		if ctx.UI != nil {
			ctx.UI.Warnf("No working proxies to save.")
		}
		return nil
	}
	line := "PROXY_LIST=" + strings.Join(working, ",") + "\n"
	if err := os.WriteFile(p.Save, []byte(line), 0o644); err != nil {
		return fmt.Errorf("write --save: %w", err)
	}
	if ctx.UI != nil {
		ctx.UI.Successf("Saved %d working proxies to %s", len(working), p.Save)
	}
	return nil
}

func writeProxyResults(ctx *Context, results []network.CheckResult) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if ctx.PlainText {
		for _, res := range results {
			line := []string{res.Proxy, res.Status, fmt.Sprintf("%d", res.LatencyMS), res.ExitIP, res.Error}
			fmt.Fprintln(ctx.Out, strings.Join(line, "\t"))
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "proxy\tstatus\tlatency_ms\tip\terror")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", res.Proxy, res.Status, res.LatencyMS, res.ExitIP, res.Error)
	}
	return tw.Flush()
}
