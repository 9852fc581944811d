// Package cli implements the gopeek command line.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"gopeek/internal/config"
	"gopeek/peek"
	"gopeek/process"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// targetFlags selects the process a command reads from.
type targetFlags struct {
	pid    int
	self   bool
	target string
	addr   string
}

func (f *targetFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.pid, "pid", 0, "Process ID to read from")
	fs.BoolVar(&f.self, "self", false, "Read from the gopeek process itself")
	fs.StringVar(&f.target, "target", "", "Process name (Linux) or window title (Windows) to resolve")
	fs.StringVar(&f.addr, "addr", "", "Address to read, hex with 0x prefix or decimal")
}

func (f *targetFlags) address() (process.ProcessMemoryAddress, error) {
	if f.addr == "" {
		return 0, fmt.Errorf("--addr is required")
	}
	addr, err := strconv.ParseUint(f.addr, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid --addr %q: %w", f.addr, err)
	}
	return process.ProcessMemoryAddress(addr), nil
}

// open returns a Reader for the selected target. The caller closes it.
func (f *targetFlags) open(cfg *config.Config) (*peek.Reader, error) {
	opts := []peek.Option{
		peek.WithChunkSize(cfg.ChunkSize),
		peek.WithMaxCString(cfg.MaxCString),
	}

	selected := 0
	if f.pid != 0 {
		selected++
	}
	if f.self {
		selected++
	}
	if f.target != "" {
		selected++
	}
	if selected != 1 {
		return nil, fmt.Errorf("exactly one of --pid, --self or --target is required")
	}

	switch {
	case f.self:
		return peek.Current(opts...), nil
	case f.target != "":
		return peek.FromTargetName(f.target, opts...)
	default:
		return peek.FromPID(process.ProcessID(f.pid), opts...)
	}
}

type rootOptions struct {
	configPath string
	cfg        *config.Config

	// terminal is set when output goes to an interactive terminal
	terminal bool
}

// useColor decides whether output gets ANSI colors
func (o *rootOptions) useColor() bool {
	switch o.cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return o.terminal
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewRootCmd builds the gopeek command tree
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{})
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gopeek",
		Short: "Read memory from a running process",
		Long: `gopeek reads typed values, raw bytes and null-terminated strings out of a
running process through process_vm_readv (Linux) or ReadProcessMemory (Windows).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default $"+config.EnvConfigPath+")")

	cmd.AddCommand(newPIDCmd())
	cmd.AddCommand(newValueCmd(opts))
	cmd.AddCommand(newBytesCmd(opts))
	cmd.AddCommand(newCStringCmd(opts))

	return cmd
}

// Execute runs the root command. When stdout is a terminal it is wrapped so
// ANSI colors also render on Windows consoles.
func Execute() error {
	opts := &rootOptions{terminal: isTerminal(os.Stdout)}
	cmd := newRootCmd(opts)
	if opts.terminal {
		cmd.SetOut(colorable.NewColorableStdout())
	}
	return cmd.Execute()
}

func newPIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pid",
		Short: "Print the process ID of gopeek itself",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), peek.CurrentID())
		},
	}
}
