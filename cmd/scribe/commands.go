package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kbukum/scribe/app"
	"github.com/kbukum/scribe/audio"
	"github.com/kbukum/scribe/config"
	"github.com/kbukum/scribe/notify"
	"github.com/kbukum/scribe/transcription"
	"github.com/kbukum/scribe/version"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `Usage: scribe <command> [flags]

Commands:
  serve       run the local HTTP bridge
  transcribe  transcribe a WAV file and print the phrase
  version     print build information
`

type command func(ctx context.Context, args []string, stdout, stderr io.Writer) error

var commands = map[string]command{
	"serve":      serveCmd,
	"transcribe": transcribeCmd,
	"version":    versionCmd,
}

var errUsage = errors.New("usage")

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		if args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
			fmt.Fprint(stdout, usage)
			return exitOK
		}
		fmt.Fprintf(stderr, "scribe: unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}
	if err := cmd(ctx, args[1:], stdout, stderr); err != nil {
		switch {
		case errors.Is(err, pflag.ErrHelp):
			return exitOK
		case errors.Is(err, errUsage):
			return exitUsage
		}
		fmt.Fprintf(stderr, "scribe %s: %v\n", args[0], err)
		return exitError
	}
	return exitOK
}

// commonFlags are shared by the commands that load configuration.
type commonFlags struct {
	configFile string
	envFile    string
	debug      bool
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&c.configFile, "config", "c", "", "config file (default: search ./config.yml, ./config/, user config dir)")
	fs.StringVar(&c.envFile, "env-file", "", ".env file to load")
	fs.BoolVar(&c.debug, "debug", false, "log at debug level, including raw service responses")
}

func (c *commonFlags) load() (*app.Config, error) {
	var opts []config.LoaderOption
	if c.configFile != "" {
		opts = append(opts, config.WithConfigFile(c.configFile))
	}
	if c.envFile != "" {
		opts = append(opts, config.WithEnvFile(c.envFile))
	}
	cfg, err := app.LoadConfig(opts...)
	if err != nil {
		return nil, err
	}
	if c.debug {
		cfg.Debug = true
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false
	return fs
}

func serveCmd(ctx context.Context, args []string, _, stderr io.Writer) error {
	var (
		common commonFlags
		host   string
		port   int
	)
	fs := newFlagSet("serve", stderr)
	common.register(fs)
	fs.StringVar(&host, "host", "", "listen host (overrides server.host)")
	fs.IntVar(&port, "port", 0, "listen port (overrides server.port)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	cfg.Server.Enabled = true
	if fs.Changed("host") {
		cfg.Server.Host = host
	}
	if fs.Changed("port") {
		cfg.Server.Port = port
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}

func transcribeCmd(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		common   commonFlags
		language string
		raw      bool
	)
	fs := newFlagSet("transcribe", stderr)
	common.register(fs)
	fs.StringVarP(&language, "language", "l", "", "language hint, e.g. eng (overrides scribe.language)")
	fs.BoolVar(&raw, "raw", false, "print the unfiltered service response as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: scribe transcribe [flags] file.wav")
		return errUsage
	}

	clip, err := readClip(fs.Arg(0))
	if err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	if !common.debug {
		cfg.Logging.Level = "warn"
	}
	if fs.Changed("language") {
		cfg.Scribe.Language = language
	}
	cfg.Scribe.SampleRate = clip.SampleRate
	cfg.Server.Enabled = false

	a, err := app.New(cfg,
		app.WithNotifier(notify.Func(func(msg string) { fmt.Fprintln(stderr, msg) })),
		app.WithSummaryOutput(nil),
	)
	if err != nil {
		return err
	}

	return a.RunTask(ctx, func(ctx context.Context) error {
		if raw {
			p, err := a.Providers.Get(ctx)
			if err != nil {
				return err
			}
			resp, err := p.Transcribe(ctx, transcription.Request{
				Samples:    clip.Samples,
				SampleRate: clip.SampleRate,
				Language:   cfg.Scribe.Language,
			})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}

		phrase, err := a.Engine.OnAudioFrame(ctx, clip.Samples, clip.Duration(), false)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, strings.Join(phrase, " "))
		return nil
	})
}

func readClip(path string) (*audio.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return audio.ReadWAV(f)
}

func versionCmd(_ context.Context, args []string, stdout, stderr io.Writer) error {
	var asJSON bool
	fs := newFlagSet("version", stderr)
	fs.BoolVar(&asJSON, "json", false, "print as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	info := version.Get()
	if asJSON {
		return json.NewEncoder(stdout).Encode(info)
	}
	fmt.Fprintf(stdout, "scribe %s\n", info)
	return nil
}
