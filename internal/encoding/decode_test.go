package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/mewicrm/mewi/internal/encoding"
)

func decodeAll(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.Decode(bytes.NewReader(input))
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(out)
}

func TestDecode_UTF8PassThrough(t *testing.T) {
	assert.Equal(t, "Échéance; Dossier débiteur", decodeAll(t, []byte("Échéance; Dossier débiteur")))
}

func TestDecode_UTF8BOMStripped(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("nom;email")...)
	assert.Equal(t, "nom;email", decodeAll(t, input))
}

func TestDecode_Windows1252(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte("Société Générale; échéance"))
	require.NoError(t, err)

	assert.Equal(t, "Société Générale; échéance", decodeAll(t, encoded))
}

func TestDecode_EmptyInput(t *testing.T) {
	assert.Equal(t, "", decodeAll(t, nil))
}
