package outwriter

import (
	"bytes"
	"encoding/csv"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		precision int
		value     float64
		plain     string
		money     string
	}{
		{1, 1234567.891, "1234567.9", "1,234,567.9"},
		{2, 1234567.891, "1234567.89", "1,234,567.89"},
		{1, 12.0, "12.0", "12"},
	}
	for _, tt := range tests {
		fmtFloat, fmtMoney := createFormatters(tt.precision)
		assert.Equal(t, tt.plain, fmtFloat(tt.value))
		assert.Equal(t, tt.money, fmtMoney(tt.value))
	}
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(w *csv.Writer) error {
		return w.Write([]string{"1", "x,y"})
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,\"x,y\"\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"rows": 3}))
	assert.Equal(t, "{\n  \"rows\": 3\n}\n", buf.String())

	assert.Error(t, writeJSON(&buf, make(chan int)))
}

func TestWriteWithFileStdoutFallback(t *testing.T) {
	var buf bytes.Buffer
	err := writeWithFile(&buf, "", func(w io.Writer) error {
		_, err := w.Write([]byte("hello"))
		return err
	}, "Wrote")
	require.NoError(t, err)
	assert.Equal(t, "hello", buf.String())
}
