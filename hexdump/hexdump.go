// Package hexdump renders byte slices read from a process as an offset, hex
// and ASCII listing.
package hexdump

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Moonlight-Companies/gologger/coloransi"
)

// HexDumpOptions defines options for customizing the hexdump output
type HexDumpOptions struct {
	// BytesPerLine defines the number of bytes to display per line
	BytesPerLine int

	// GroupSize defines the grouping of bytes (usually 1, 2, 4, or 8)
	GroupSize int

	// ShowASCII determines whether to show the ASCII representation
	ShowASCII bool

	// StartOffset is the address printed for the first byte
	StartOffset uint64

	// OffsetWidth is the width of the offset column in hex digits
	OffsetWidth int

	// Color enables ANSI colors; the color fields are ignored when false
	Color bool

	OffsetColor       coloransi.ColorCode
	HexColor          coloransi.ColorCode
	ASCIIColor        coloransi.ColorCode
	NonPrintableColor coloransi.ColorCode
	ZeroColor         coloransi.ColorCode

	// MaxLines is the maximum number of lines to show (0 for no limit)
	MaxLines int
}

// DefaultOptions returns the default hexdump options
func DefaultOptions() HexDumpOptions {
	return HexDumpOptions{
		BytesPerLine:      16,
		GroupSize:         1,
		ShowASCII:         true,
		OffsetWidth:       16,
		Color:             false,
		OffsetColor:       coloransi.Cyan,
		HexColor:          coloransi.Green,
		ASCIIColor:        coloransi.White,
		NonPrintableColor: coloransi.BrightBlack,
		ZeroColor:         coloransi.BrightBlack,
	}
}

// Dump creates a hex dump of the given data with specified options
func Dump(data []byte, options HexDumpOptions) string {
	var buffer bytes.Buffer
	DumpToWriter(&buffer, data, options)
	return buffer.String()
}

// DumpToWriter writes a hex dump of the given data to the specified writer
func DumpToWriter(writer io.Writer, data []byte, options HexDumpOptions) {
	if options.BytesPerLine <= 0 {
		options.BytesPerLine = 16
	}
	if options.GroupSize <= 0 || options.GroupSize > options.BytesPerLine {
		options.GroupSize = 1
	}
	if options.OffsetWidth <= 0 {
		options.OffsetWidth = 8
	}

	lineCount := 0
	for offset := 0; offset < len(data); offset += options.BytesPerLine {
		if options.MaxLines > 0 && lineCount >= options.MaxLines {
			fmt.Fprintf(writer, "... %d more bytes\n", len(data)-offset)
			break
		}

		end := min(offset+options.BytesPerLine, len(data))
		formatLine(writer, data[offset:end], options.StartOffset+uint64(offset), options)
		lineCount++
	}
}

func paint(options HexDumpOptions, color coloransi.ColorCode, s string) string {
	if !options.Color {
		return s
	}
	return coloransi.Foreground(color, s)
}

// formatLine formats a single line of the hex dump:
//
//	00007ffe12340000  68 65 6c 6c 6f 00 ...  | hello. |
func formatLine(writer io.Writer, data []byte, offset uint64, options HexDumpOptions) {
	offsetStr := fmt.Sprintf("%0"+strconv.Itoa(options.OffsetWidth)+"x", offset)
	fmt.Fprint(writer, paint(options, options.OffsetColor, offsetStr), "  ")

	groups := formatHexValues(data, options)
	fmt.Fprint(writer, strings.Join(groups, " "))

	// Pad short lines so the ASCII column stays aligned
	if missing := options.BytesPerLine - len(data); missing > 0 {
		fullGroups := (options.BytesPerLine + options.GroupSize - 1) / options.GroupSize
		missingSpaces := fullGroups - len(groups)
		fmt.Fprint(writer, strings.Repeat(" ", missing*2+missingSpaces))
	}

	if options.ShowASCII {
		fmt.Fprint(writer, "  |")
		formatASCII(writer, data, options)
		fmt.Fprint(writer, "|")
	}

	fmt.Fprintln(writer)
}

// formatASCII formats the ASCII part of a hex dump line
func formatASCII(writer io.Writer, data []byte, options HexDumpOptions) {
	for _, b := range data {
		switch {
		case b == 0:
			fmt.Fprint(writer, paint(options, options.ZeroColor, "."))
		case b < 0x20 || b > 0x7e:
			fmt.Fprint(writer, paint(options, options.NonPrintableColor, "."))
		default:
			fmt.Fprint(writer, paint(options, options.ASCIIColor, string(rune(b))))
		}
	}
}

// formatHexValues formats the hex values of a line into groups of GroupSize bytes
func formatHexValues(data []byte, options HexDumpOptions) []string {
	var result []string
	var group strings.Builder

	for i, b := range data {
		color := options.HexColor
		if b == 0 {
			color = options.ZeroColor
		}
		group.WriteString(paint(options, color, fmt.Sprintf("%02x", b)))

		if (i+1)%options.GroupSize == 0 || i == len(data)-1 {
			result = append(result, group.String())
			group.Reset()
		}
	}

	return result
}
