package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales_data.txt")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestReadSalesFile_SkipsHeaderAndBlankLines(t *testing.T) {
	content := "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region\n" +
		"T001|2024-12-01|P101|Laptop|2|45000|C001|North\n" +
		"\n" +
		"T002|2024-12-01|P102|Mouse|5|499|C002|South\n" +
		"\n"

	lines, err := ReadSalesFile(writeTempFile(t, []byte(content)))

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "T001|2024-12-01|P101|Laptop|2|45000|C001|North", lines[0])
	assert.Equal(t, "T002|2024-12-01|P102|Mouse|5|499|C002|South", lines[1])
}

func TestReadSalesFile_WindowsLineEndings(t *testing.T) {
	content := "header\r\nT001|2024-12-01|P101|Laptop|2|45000|C001|North\r\n"

	lines, err := ReadSalesFile(writeTempFile(t, []byte(content)))

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "T001|2024-12-01|P101|Laptop|2|45000|C001|North", lines[0])
}

func TestReadSalesFile_NonUTF8FallsBackToWindows1252(t *testing.T) {
	// 0xE9 is é in Windows-1252/Latin-1 but invalid as a lone UTF-8 byte.
	content := []byte("header\nT001|2024-12-01|P101|Caf\xe9 Machine|1|9999|C001|North\n")

	lines, err := ReadSalesFile(writeTempFile(t, content))

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Café Machine")
}

func TestReadSalesFile_MissingFile(t *testing.T) {
	_, err := ReadSalesFile(filepath.Join(t.TempDir(), "nope.txt"))

	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadSalesFile_HeaderOnlyIsEmpty(t *testing.T) {
	_, err := ReadSalesFile(writeTempFile(t, []byte("TransactionID|Date|...\n")))

	require.ErrorIs(t, err, ErrEmptyFile)
}
