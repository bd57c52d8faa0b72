package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	require.NotEmpty(t, c.Popular)
	assert.Equal(t, "Neura the Brainy Explorer", c.Popular[0].Name)
	assert.Equal(t, "#E5D0FF", c.Color("science"))
	assert.Equal(t, defaultColor, c.Color("astrology"))
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
popular:
  - id: s1
    name: Solo
    subject: maths
    topic: Fractions
    duration: 10
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Popular, 1)
	assert.Equal(t, "Fractions", c.Popular[0].Topic)
	assert.Equal(t, defaultColor, c.Color("maths"))
}

func TestParse_RejectsIncompleteEntries(t *testing.T) {
	_, err := Parse([]byte("popular:\n  - name: NoID\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
