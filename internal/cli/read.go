package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unsafe"

	"gopeek/hexdump"
	"gopeek/peek"
	"gopeek/process"

	"github.com/spf13/cobra"
)

// valueReaders maps --type names to typed reads formatted for output
var valueReaders = map[string]func(r *peek.Reader, addr process.ProcessMemoryAddress) (string, error){
	"u8":  formatInt(peek.PeekValue[uint8]),
	"u16": formatInt(peek.PeekValue[uint16]),
	"u32": formatInt(peek.PeekValue[uint32]),
	"u64": formatInt(peek.PeekValue[uint64]),
	"i8":  formatInt(peek.PeekValue[int8]),
	"i16": formatInt(peek.PeekValue[int16]),
	"i32": formatInt(peek.PeekValue[int32]),
	"i64": formatInt(peek.PeekValue[int64]),
	"f32": formatFloat(peek.PeekValue[float32]),
	"f64": formatFloat(peek.PeekValue[float64]),
	"ptr": func(r *peek.Reader, addr process.ProcessMemoryAddress) (string, error) {
		ptr, err := r.PeekPointer(addr)
		if err != nil {
			return "", err
		}
		return ptr.ToString(), nil
	},
}

type integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func formatInt[T integer](read func(*peek.Reader, process.ProcessMemoryAddress) (T, error)) func(*peek.Reader, process.ProcessMemoryAddress) (string, error) {
	return func(r *peek.Reader, addr process.ProcessMemoryAddress) (string, error) {
		v, err := read(r, addr)
		if err != nil {
			return "", err
		}
		// hex shows the raw bits at the value's width
		width := unsafe.Sizeof(v)
		bits := uint64(v)
		if width < 8 {
			bits &= 1<<(8*width) - 1
		}
		return fmt.Sprintf("%d (0x%0*x)", v, int(width*2), bits), nil
	}
}

func formatFloat[T float32 | float64](read func(*peek.Reader, process.ProcessMemoryAddress) (T, error)) func(*peek.Reader, process.ProcessMemoryAddress) (string, error) {
	return func(r *peek.Reader, addr process.ProcessMemoryAddress) (string, error) {
		v, err := read(r, addr)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%g", v), nil
	}
}

func valueTypes() string {
	names := make([]string, 0, len(valueReaders))
	for name := range valueReaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func newValueCmd(opts *rootOptions) *cobra.Command {
	var (
		target targetFlags
		typ    string
	)

	cmd := &cobra.Command{
		Use:   "value",
		Short: "Read a typed value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			read, ok := valueReaders[typ]
			if !ok {
				return fmt.Errorf("unknown --type %q, want one of %s", typ, valueTypes())
			}

			addr, err := target.address()
			if err != nil {
				return err
			}

			r, err := target.open(opts.cfg)
			if err != nil {
				return err
			}
			defer r.Close()

			out, err := read(r, addr)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", addr.ToString(), typ, out)
			return nil
		},
	}

	target.register(cmd.Flags())
	cmd.Flags().StringVar(&typ, "type", "u32", "Value type: "+valueTypes())

	return cmd
}

func (o *rootOptions) dump(w io.Writer, data []byte, addr process.ProcessMemoryAddress) {
	options := hexdump.DefaultOptions()
	options.BytesPerLine = o.cfg.Hexdump.BytesPerLine
	options.GroupSize = o.cfg.Hexdump.GroupSize
	options.StartOffset = uint64(addr)
	options.Color = o.useColor()
	hexdump.DumpToWriter(w, data, options)
}

func newBytesCmd(opts *rootOptions) *cobra.Command {
	var (
		target targetFlags
		size   uint
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "bytes",
		Short: "Read an exact number of bytes and print a hex dump",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if size == 0 {
				return fmt.Errorf("--size must be positive")
			}
			if uint64(size) > peek.MaxPeekSize {
				return fmt.Errorf("--size %d exceeds the %d byte limit", size, peek.MaxPeekSize)
			}

			addr, err := target.address()
			if err != nil {
				return err
			}

			r, err := target.open(opts.cfg)
			if err != nil {
				return err
			}
			defer r.Close()

			data, err := r.PeekBytes(addr, process.ProcessMemorySize(size))
			if err != nil {
				return err
			}

			if raw {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			opts.dump(cmd.OutOrStdout(), data, addr)
			return nil
		},
	}

	target.register(cmd.Flags())
	cmd.Flags().UintVar(&size, "size", 16, "Number of bytes to read")
	cmd.Flags().BoolVar(&raw, "raw", false, "Write the bytes unformatted")

	return cmd
}

func newCStringCmd(opts *rootOptions) *cobra.Command {
	var (
		target targetFlags
		maxLen int
		hex    bool
	)

	cmd := &cobra.Command{
		Use:   "cstring",
		Short: "Read a null-terminated string",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := target.address()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("max") {
				opts.cfg.MaxCString = maxLen
			}

			r, err := target.open(opts.cfg)
			if err != nil {
				return err
			}
			defer r.Close()

			s, err := r.ScanCString(addr)
			if err != nil {
				return err
			}

			if hex {
				opts.dump(cmd.OutOrStdout(), s.Bytes, addr)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%q\n", s.Bytes)
			}
			if !s.Terminated {
				cmd.PrintErrf("warning: no terminator found after %d bytes\n", len(s.Bytes))
			}
			return nil
		},
	}

	target.register(cmd.Flags())
	cmd.Flags().IntVar(&maxLen, "max", 0, "Stop after this many bytes (0 for no limit)")
	cmd.Flags().BoolVar(&hex, "hex", false, "Print the string as a hex dump")

	return cmd
}
