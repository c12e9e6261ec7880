package destinations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCanonicalDropsUnknown(t *testing.T) {
	tbl := Default()
	assert.Equal(t, []string{"TV2.no"}, tbl.ToCanonical([]string{"unknown_code", "tv2no"}))
	assert.Equal(t, []string{"Play", "Play"}, tbl.ToCanonical([]string{"play", "clearchannel", "play"}))
	assert.Empty(t, tbl.ToCanonical(nil))
}

func TestRoundTripPreservesOrderAndMultiplicity(t *testing.T) {
	tbl := Default()
	sets := [][]string{
		{},
		{"MyGame"},
		{"Play", "TV2.no"},
		{"Direktesport", "MyGame", "Play", "TV2.no"},
		{"Play", "Play"},
	}
	for _, s := range sets {
		assert.Equal(t, s, tbl.ToCanonical(tbl.ToHostCodes(s)))
	}
}

func TestToHostCodes(t *testing.T) {
	tbl := Default()
	assert.Equal(t, []string{"mygame", "tv2no"}, tbl.ToHostCodes([]string{"MyGame", "TV2.no"}))
}

func TestNewRejectsNonBijective(t *testing.T) {
	_, err := New([]Entry{{ID: "A", Code: "a"}, {ID: "B", Code: "a"}})
	require.Error(t, err)

	_, err = New([]Entry{{ID: "A", Code: "a"}, {ID: "A", Code: "b"}})
	require.Error(t, err)

	_, err = New([]Entry{{ID: "A"}})
	require.Error(t, err)

	_, err = New(nil)
	require.Error(t, err)
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "destinations.yaml")
	doc := []byte("destinations:\n  - id: TV2.no\n    code: tv2no\n  - id: Radio\n    code: radio\n")
	require.NoError(t, os.WriteFile(path, doc, 0o600))

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"TV2.no", "Radio"}, tbl.Known())
	assert.Equal(t, []string{"Radio"}, tbl.ToCanonical([]string{"radio", "play"}))
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	tbl, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"TV2.no", "Play", "Direktesport", "MyGame"}, tbl.Known())
}
