// Command ecelgamal derives EC-ElGamal keys, encrypts and decrypts text on
// the command line and serves the HTTP API.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/vocdoni/ec-elgamal/config"
	"github.com/vocdoni/ec-elgamal/log"
)

type command struct {
	usage string
	run   func(env *environment, args []string) error
}

var commands = map[string]command{
	"curves":  {"list the supported curves", runCurves},
	"keygen":  {"derive or generate a key pair", runKeygen},
	"encrypt": {"encrypt a text for a public key", runEncrypt},
	"decrypt": {"decrypt a ciphertext with a secret key", runDecrypt},
	"serve":   {"run the HTTP API", runServe},
}

// environment carries the process streams so commands can be driven from
// tests.
type environment struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
}

func main() {
	env := &environment{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		cfg:    config.Default(),
	}
	if err := run(env, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(env *environment, args []string) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		usage(env.stderr)
		if len(args) == 0 {
			return fmt.Errorf("missing command")
		}
		return nil
	}
	cmd, ok := commands[args[0]]
	if !ok {
		usage(env.stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
	return cmd.run(env, args[1:])
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "usage: ecelgamal <command> [flags]")
	fmt.Fprintln(w, "\ncommands:")
	for _, name := range names {
		fmt.Fprintf(w, "  %-8s %s\n", name, commands[name].usage)
	}
	fmt.Fprintf(w, "\nevery flag can be set with the %s<FLAG> environment variable\n", config.EnvPrefix)
}

// newFlagSet returns a flag set for the named command with the logging flags
// already bound to env.cfg. Commands other than serve log to stderr so that
// their output stays clean.
func newFlagSet(env *environment, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	output := "stderr"
	level := log.LogLevelError
	if name == "serve" {
		output = env.cfg.LogOutput
		level = env.cfg.LogLevel
	}
	fs.StringVar(&env.cfg.LogLevel, "loglevel", level, "log level (debug, info, warn, error)")
	fs.StringVar(&env.cfg.LogOutput, "logoutput", output, "log output (stdout, stderr or a file path)")
	return fs
}

// parseFlags applies the environment overrides and then the command line
// arguments, validates the configuration and initializes the logger.
func parseFlags(env *environment, fs *flag.FlagSet, args []string) error {
	var envErr error
	fs.VisitAll(func(f *flag.Flag) {
		name := config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		if v, ok := os.LookupEnv(name); ok && envErr == nil {
			if err := fs.Set(f.Name, v); err != nil {
				envErr = fmt.Errorf("%s: %w", name, err)
			}
		}
	})
	if envErr != nil {
		return envErr
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := env.cfg.Validate(); err != nil {
		return err
	}
	log.Init(env.cfg.LogLevel, env.cfg.LogOutput, nil)
	return nil
}
