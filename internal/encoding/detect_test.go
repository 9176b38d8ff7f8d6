package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfigueiredo/fatura/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.DecodeReader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestDecodeReader_UTF8Passthrough(t *testing.T) {
	input := "Número;Cliente;Descrição\nINV-1;Açores Lda;Café\n"
	assert.Equal(t, input, decode(t, []byte(input)))
}

func TestDecodeReader_UTF8BOMStripped(t *testing.T) {
	content := "Número;Cliente\n"
	input := append([]byte{0xEF, 0xBB, 0xBF}, content...)
	assert.Equal(t, content, decode(t, input))
}

func TestDecodeReader_Windows1252(t *testing.T) {
	// "Descrição\n" in Windows-1252: ç = 0xE7, ã = 0xE3.
	input := []byte{'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', '\n'}
	assert.Equal(t, "Descrição\n", decode(t, input))
}

func TestDecodeReader_UTF16LE(t *testing.T) {
	content := "INV-1;Acme\n"

	input := []byte{0xFF, 0xFE}
	for _, r := range content {
		input = append(input, byte(r), 0x00)
	}

	assert.Equal(t, content, decode(t, input))
}
