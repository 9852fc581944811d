package cli

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"unsafe"

	"gopeek/internal/config"
	"gopeek/process"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sink []any

func hexAddr[T any](v *T) string {
	sink = append(sink, v)
	return fmt.Sprintf("0x%x", uintptr(unsafe.Pointer(v)))
}

func sliceHexAddr(b []byte) string {
	sink = append(sink, b)
	return fmt.Sprintf("0x%x", uintptr(unsafe.Pointer(&b[0])))
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("GOPEEK_COLOR", "never")

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestPIDCmd(t *testing.T) {
	out, _, err := run(t, "pid")
	require.NoError(t, err)
	pid, err := strconv.Atoi(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Positive(t, pid)
}

func TestValueCmd(t *testing.T) {
	u32 := new(uint32)
	*u32 = 0x12345678
	i16 := new(int16)
	*i16 = -2
	f64 := new(float64)
	*f64 = 1.5

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "u32", args: []string{"--addr", hexAddr(u32), "--type", "u32"}, want: "u32 305419896 (0x12345678)"},
		{name: "default type", args: []string{"--addr", hexAddr(u32)}, want: "u32 305419896 (0x12345678)"},
		{name: "i16", args: []string{"--addr", hexAddr(i16), "--type", "i16"}, want: "i16 -2 (0xfffe)"},
		{name: "f64", args: []string{"--addr", hexAddr(f64), "--type", "f64"}, want: "f64 1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, append([]string{"value", "--self"}, tt.args...)...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestValueCmdUnknownType(t *testing.T) {
	v := new(uint32)
	_, _, err := run(t, "value", "--self", "--addr", hexAddr(v), "--type", "u128")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown --type")
}

func TestBytesCmd(t *testing.T) {
	src := []byte{0xde, 0xad, 0xbe, 0xef, 'h', 'i'}

	out, _, err := run(t, "bytes", "--self", "--addr", sliceHexAddr(src), "--size", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "de ad be ef 68 69")
	assert.Contains(t, out, "|....hi|")
	assert.NotContains(t, out, "\033[")

	out, _, err = run(t, "bytes", "--self", "--addr", sliceHexAddr(src), "--size", "6", "--raw")
	require.NoError(t, err)
	assert.Equal(t, string(src), out)
}

func TestBytesCmdColor(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	t.Setenv(config.EnvConfigPath, "")

	var stdout bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"bytes", "--self", "--addr", sliceHexAddr(src), "--size", "4"})
	t.Setenv("GOPEEK_COLOR", "always")

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "\033[")
}

func TestCStringCmd(t *testing.T) {
	src := []byte("hello, peek\x00junk")

	out, stderr, err := run(t, "cstring", "--self", "--addr", sliceHexAddr(src))
	require.NoError(t, err)
	assert.Equal(t, "\"hello, peek\"\n", out)
	assert.Empty(t, stderr)

	out, stderr, err = run(t, "cstring", "--self", "--addr", sliceHexAddr(src), "--max", "5")
	require.NoError(t, err)
	assert.Equal(t, "\"hello\"\n", out)
	assert.Contains(t, stderr, "no terminator")

	out, _, err = run(t, "cstring", "--self", "--addr", sliceHexAddr(src), "--hex")
	require.NoError(t, err)
	assert.Contains(t, out, "|hello, peek|")
}

func TestTargetSelection(t *testing.T) {
	v := new(uint32)
	addr := hexAddr(v)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no target", args: []string{"value", "--addr", addr}, want: "exactly one of"},
		{name: "two targets", args: []string{"value", "--self", "--pid", "1", "--addr", addr}, want: "exactly one of"},
		{name: "missing addr", args: []string{"value", "--self"}, want: "--addr is required"},
		{name: "bad addr", args: []string{"value", "--self", "--addr", "0xzz"}, want: "invalid --addr"},
		{name: "zero size", args: []string{"bytes", "--self", "--addr", addr, "--size", "0"}, want: "--size must be positive"},
		{name: "huge size", args: []string{"bytes", "--self", "--addr", addr, "--size", "18446744073709551615"}, want: "byte limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNonexistentPID(t *testing.T) {
	v := new(uint32)
	_, _, err := run(t, "value", "--pid", strconv.Itoa(1<<30), "--addr", hexAddr(v))

	var acquireErr *process.AcquireError
	assert.ErrorAs(t, err, &acquireErr)
}

func TestInvalidAddressRead(t *testing.T) {
	_, _, err := run(t, "value", "--self", "--addr", "0x0", "--type", "u64")

	var readErr *process.ReadError
	assert.ErrorAs(t, err, &readErr)
}
