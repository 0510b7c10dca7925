package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/danmuck/poolctl/internal/jobpool"
	"github.com/danmuck/poolctl/internal/logging"
)

func main() {
	cfg, helpUsage, err := parseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "poolctl: %v\n", err)
		os.Exit(1)
	}
	if helpUsage {
		fmt.Print(jobpool.UsageExamples)
		os.Exit(0)
	}

	logging.ConfigureRuntime()
	code, err := jobpool.Run(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "poolctl: %v\n", err)
	}
	os.Exit(code)
}

func parseArgs(args []string) (jobpool.Config, bool, error) {
	defaults := jobpool.DefaultConfig()

	var opts options
	fs := flag.NewFlagSet("poolctl", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.IntVar(&opts.jobs, "j", defaults.Jobs, "job slot count, default is available CPU count")
	fs.IntVar(&opts.jobs, "jobs", defaults.Jobs, "job slot count, default is available CPU count")
	fs.BoolVar(&opts.noCheck, "no-check", false,
		"disable the final check that all job slots were returned to the pool on exit")
	fs.BoolVar(&opts.helpUsage, "help-usage", false, "print usage examples")
	fs.StringVar(&opts.configPath, "config", "", "optional TOML defaults file")
	registerBackendFlags(fs, &opts)

	if err := fs.Parse(expandJobsShorthand(args)); err != nil {
		return jobpool.Config{}, false, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := defaults
	if opts.configPath != "" {
		loaded, err := loadFileConfig(opts.configPath, cfg)
		if err != nil {
			return jobpool.Config{}, false, err
		}
		cfg = loaded
	}

	// Explicit flags win over the config file.
	if set["j"] || set["jobs"] {
		cfg.Jobs = opts.jobs
	}
	if set["no-check"] {
		cfg.NoCheck = opts.noCheck
	}
	if err := applyBackendFlags(&cfg, &opts, set); err != nil {
		return jobpool.Config{}, false, err
	}

	cfg.Command = fs.Args()
	return cfg, opts.helpUsage, nil
}

// valueFlags are the flags that consume a separate following argument. The
// scanner must not mistake such a value for the start of the supervised
// command, or a -jN after it would never be rewritten.
var valueFlags = map[string]bool{
	"j":      true,
	"jobs":   true,
	"fifo":   true,
	"name":   true,
	"config": true,
}

// expandJobsShorthand rewrites the combined "-jN" form into "-j N" so the
// flag package accepts it. Only leading flags and their values are scanned;
// everything from the first non-flag argument on is the supervised command
// and passes through untouched.
func expandJobsShorthand(args []string) []string {
	out := make([]string, 0, len(args)+1)
	pendingValue := false
	for i, arg := range args {
		if pendingValue {
			pendingValue = false
			out = append(out, arg)
			continue
		}
		if arg == "--" || !strings.HasPrefix(arg, "-") {
			return append(out, args[i:]...)
		}
		if rest, ok := strings.CutPrefix(arg, "-j"); ok && rest != "" && isDigits(rest) {
			out = append(out, "-j", rest)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if !strings.Contains(name, "=") && valueFlags[name] {
			pendingValue = true
		}
		out = append(out, arg)
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
