package output

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomyedwab/jamajira/database"
)

func TestFormatValue(t *testing.T) {
	require.Equal(t, NullText, FormatValue(nil))
	require.Equal(t, "20006", FormatValue(int64(20006)))
	require.Equal(t, "ticketx", FormatValue([]byte("ticketx")))
	require.Equal(t, "1002", FormatValue("1002"))
}

func TestPrinterRowsRendersValues(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, false)

	p.Rows("Retrieved from items table", []string{"ID", "Title", "LinkedID"}, []database.Row{
		{int64(20006), "ticketx", nil},
	})

	text := out.String()
	require.Contains(t, text, "Retrieved from items table")
	require.Contains(t, text, "20006")
	require.Contains(t, text, "ticketx")
	require.Contains(t, text, NullText)
	require.Empty(t, errOut.String())
}

func TestPrinterRowsWithNoRows(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, false)

	p.Rows("Retrieved from fields table", []string{"FieldID"}, nil)
	require.Contains(t, out.String(), "No rows found")
}

func TestPrinterStatusLinesWithoutColor(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, false)

	p.Success("Inserted %d row", 1)
	p.Error("Failed to connect")

	require.Equal(t, "[OK] Inserted 1 row\n", out.String())
	require.Equal(t, "[ERROR] Failed to connect\n", errOut.String())
}

func TestResolveColors(t *testing.T) {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		t.Skip("NO_COLOR is set in the test environment")
	}
	t.Setenv("TERM", "xterm")
	require.True(t, ResolveColors(true))
	require.False(t, ResolveColors(false))

	t.Setenv("NO_COLOR", "1")
	require.False(t, ResolveColors(true))
}
