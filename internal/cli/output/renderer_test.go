package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twistorlab/mtx/internal/cli/output"
)

func TestAutoModeFallsBackToMarkdown(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, &buf, output.ModeAuto)
	assert.Equal(t, output.ModeMarkdown, r.Mode())
}

func TestExplicitModeKept(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, &buf, output.ModeJSON)
	assert.Equal(t, output.ModeJSON, r.Mode())
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"auto", "text", "markdown", "json"} {
		mode, err := output.ParseMode(name)
		require.NoError(t, err)
		assert.Equal(t, output.Mode(name), mode)
	}

	mode, err := output.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, output.ModeAuto, mode)

	_, err = output.ParseMode("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid output format "xml"`)
}

func TestHeadingMarkdown(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, &buf, output.ModeMarkdown)
	r.Headingf("Results (%d)", 3)
	assert.Equal(t, "## Results (3)\n", buf.String())
}

func TestErrorGoesToErrStream(t *testing.T) {
	var out, errOut bytes.Buffer
	r := output.NewRenderer(&out, &errOut, output.ModeMarkdown)
	r.Errorf("boom: %s", "reason")
	assert.Empty(t, out.String())
	assert.Equal(t, "boom: reason\n", errOut.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, &buf, output.ModeJSON)
	require.NoError(t, r.JSON(map[string]any{"infix": "(Z_{1} + Z_{2})"}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "(Z_{1} + Z_{2})", decoded["infix"])
}
