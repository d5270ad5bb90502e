package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormats_ListsEveryFormatWithExample(t *testing.T) {
	out, _, err := executeCmd(t, testApp(t), "formats")
	require.NoError(t, err)

	assert.Contains(t, out, "SUPPORTED OUTPUT FORMATS")
	for _, want := range []string{
		"shell (.sh)",
		"markdown (.md)",
		"json (.json)",
		"calendar (.ics)",
		"Example: zibox plan.zbx --output-format calendar --output-file plan.ics",
		"formatted as a checklist",
	} {
		assert.Contains(t, out, want)
	}
}

func TestConfig_PrintsEffectiveYAML(t *testing.T) {
	out, _, err := executeCmd(t, testApp(t), "config")
	require.NoError(t, err)

	assert.Contains(t, out, "# source: built-in defaults")
	assert.Regexp(t, `workday_start: "?09:00"?`, out)
	assert.Contains(t, out, "timezone: UTC")
}
