// Package commands implements the built-in command registry: the fixed set
// of utility commands GENGAR checks before falling back to the response
// catalog. Network-touching commands produce simulated output; only local
// facts (system info, readable log files) are real.
package commands

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"gengar/internal/config"
	"gengar/internal/logging"
)

// Handler executes one command with the text following its keyword.
type Handler func(ctx context.Context, args string) (string, error)

type command struct {
	name    string // keyword prefix, lower-case
	usage   string
	desc    string
	enabled func() bool
	run     Handler
}

// Registry maps input prefixes to handlers. Lookup is first-match over the
// registration order, so longer prefixes are registered first.
type Registry struct {
	cfg  *config.Config
	log  *logging.Logger
	cmds []command
}

func NewRegistry(cfg *config.Config, log *logging.Logger) *Registry {
	r := &Registry{cfg: cfg, log: log}
	r.cmds = []command{
		{
			name:    "network scan",
			usage:   "network scan [range]",
			desc:    "Scan network range",
			enabled: func() bool { return cfg.Commands.Scan.Enabled },
			run:     r.networkScan,
		},
		{
			name:    "scan",
			usage:   "scan [target]",
			desc:    "Network port scan",
			enabled: func() bool { return cfg.Commands.Scan.Enabled },
			run:     r.scan,
		},
		{
			name:    "vpn status",
			usage:   "vpn status",
			desc:    "Check VPN connection",
			enabled: func() bool { return cfg.Commands.VPN.Enabled },
			run:     r.vpnStatus,
		},
		{
			name:    "firewall logs",
			usage:   "firewall logs",
			desc:    "Show firewall logs",
			enabled: func() bool { return cfg.Commands.Firewall.Enabled },
			run:     r.firewallLogs,
		},
		{
			name:    "system info",
			usage:   "system info",
			desc:    "Get system information",
			enabled: func() bool { return true },
			run:     r.systemInfo,
		},
	}
	return r
}

// Execute runs the first command whose keyword prefixes the input.
// An empty string with a nil error means no registered command matched and
// the caller should keep dispatching.
func (r *Registry) Execute(ctx context.Context, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)
	for _, c := range r.cmds {
		if lower != c.name && !strings.HasPrefix(lower, c.name+" ") {
			continue
		}
		if !c.enabled() {
			return fmt.Sprintf("⚠️ The %q command is disabled in the configuration.", c.name), nil
		}
		args := strings.TrimSpace(trimmed[len(c.name):])
		r.log.Debugf("running command %q args=%q", c.name, args)
		return c.run(ctx, args)
	}
	return "", nil
}

// Count reports how many commands are currently enabled; shown by the
// status directive.
func (r *Registry) Count() int {
	n := 0
	for _, c := range r.cmds {
		if c.enabled() {
			n++
		}
	}
	return n
}

// Usages lists the usage line of every enabled command; the help directive
// renders one bullet per entry, so disabling a command removes it from help.
func (r *Registry) Usages() []string {
	out := make([]string, 0, len(r.cmds))
	for _, c := range r.cmds {
		if !c.enabled() {
			continue
		}
		out = append(out, c.usage+" - "+c.desc)
	}
	return out
}

func (r *Registry) scan(ctx context.Context, target string) (string, error) {
	if target == "" {
		return "", fmt.Errorf("scan requires a target, e.g. \"scan 192.168.1.1\"")
	}
	return fmt.Sprintf(`📡 Port scan queued for %s (simulated)

Ports: %s
Timeout: %ds per host

Active scanning is not performed by GENGAR; run nmap against authorized
targets only, e.g. nmap -sC -sV %s`,
		target, r.cfg.Network.DefaultScanPorts, r.cfg.Commands.Scan.Timeout, target), nil
}

func (r *Registry) networkScan(ctx context.Context, cidr string) (string, error) {
	if cidr == "" {
		cidr = "192.168.1.0/24"
	}
	return fmt.Sprintf(`📡 Network sweep of %s (simulated)

Ports: %s
Max concurrent hosts: %d

Active scanning is not performed by GENGAR; use nmap -sn %s on networks
you are authorized to test.`,
		cidr, r.cfg.Network.DefaultScanPorts, r.cfg.Network.MaxThreads, cidr), nil
}

func (r *Registry) vpnStatus(ctx context.Context, _ string) (string, error) {
	state := "not required"
	if r.cfg.Security.VPNRequired {
		state = "required but not verified"
	}
	return fmt.Sprintf(`🔒 VPN status (simulated)

Policy: VPN %s
Check interval: %ds

VPN probing is not implemented; inspect your tunnel interface directly.`,
		state, r.cfg.Commands.VPN.CheckInterval), nil
}

// firewallLogs tails the configured firewall log. Reading the file is real;
// everything else about the firewall stays out of scope.
func (r *Registry) firewallLogs(ctx context.Context, _ string) (string, error) {
	path := r.cfg.Commands.Firewall.LogPath
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read firewall log %s: %w", path, err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	const tail = 10
	if len(lines) > tail {
		lines = lines[len(lines)-tail:]
	}
	return fmt.Sprintf("🔥 Last %d lines of %s:\n\n%s", len(lines), path, strings.Join(lines, "\n")), nil
}

func (r *Registry) systemInfo(ctx context.Context, _ string) (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "unknown"
	}
	return fmt.Sprintf(`💻 System Information:

Hostname: %s
OS/Arch: %s/%s
CPUs: %d
Go runtime: %s
PID: %d
Working dir: %s`,
		hostname, runtime.GOOS, runtime.GOARCH, runtime.NumCPU(), runtime.Version(), os.Getpid(), wd), nil
}
