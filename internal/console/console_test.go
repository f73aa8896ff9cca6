package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestConsole_PlainOutput verifies markup is stripped when colors are off.
func TestConsole_PlainOutput(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	c := New(&out, &errOut)
	require.False(t, c.Interactive())

	c.Printf("Building %s ... ", "SDL")
	c.Println("[green]done.")
	c.Errorln("[red]Expected[reset]\t%s", "abc")

	require.Equal(t, "Building SDL ... done.\n", out.String())
	require.Equal(t, "Expected\tabc\n", errOut.String())
}

// TestConsole_ColoredOutput verifies ANSI codes appear when colors are forced on.
func TestConsole_ColoredOutput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	c := New(&out, &out, WithColor(true))
	c.Println("[green]done.")

	require.Contains(t, out.String(), "\x1b[32m")
	require.Contains(t, out.String(), "done.")
}

// TestConsole_MarkupOnlyFromFormat ensures arguments are printed verbatim.
func TestConsole_MarkupOnlyFromFormat(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	c := New(&out, &out, WithColor(true))
	c.Printf("%s", "[red]literal")

	require.Equal(t, "[red]literal", out.String())
}

type flushRecorder struct {
	bytes.Buffer

	flushed int
}

func (f *flushRecorder) Flush() error {
	f.flushed++

	return nil
}

// TestConsole_Flush calls Flush on buffered writers.
func TestConsole_Flush(t *testing.T) {
	t.Parallel()

	var out flushRecorder

	c := New(&out, &out)
	c.Printf("Building %s ... ", "glew")
	c.Flush()

	require.Equal(t, 1, out.flushed)
}

// TestProgress_HiddenWhenNotInteractive checks that nothing is drawn into logs or pipes.
func TestProgress_HiddenWhenNotInteractive(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	p := New(&out, &out).NewProgress("boost_1_39_0.tar.bz2", 100)

	n, err := p.Write(make([]byte, 100))
	require.NoError(t, err)
	require.Equal(t, 100, n)

	p.Done()
	require.Empty(t, out.String())
}

// TestProgress_Interactive checks that the description is drawn and the line is terminated.
func TestProgress_Interactive(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	p := New(&out, &out, WithInteractive(true)).NewProgress("glew-1.5.0-src.tgz", 10)

	_, err := p.Write(make([]byte, 10))
	require.NoError(t, err)

	p.Done()
	require.Contains(t, out.String(), "Downloading 'glew-1.5.0-src.tgz'")
	require.True(t, strings.HasSuffix(out.String(), "\n"))
}
