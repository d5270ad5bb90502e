package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/zibox/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePlan = `@morning
  review(inbox) [30m] #admin p:high
  write(report) [2h] #deepwork p:critical

@afternoon
  meeting(team) [1h] #collaboration
  code(feature) [3h] #deepwork p:high after:meeting

// evening is light
@evening
  exercise(run) [45m] #health
  read(book) [30m] #learning
`

func TestParse_SampleTemplate(t *testing.T) {
	blocks, err := Parse(samplePlan)
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	assert.Equal(t, "morning", blocks[0].Label)
	assert.Equal(t, "afternoon", blocks[1].Label)
	assert.Equal(t, "evening", blocks[2].Label)

	review := blocks[0].Tasks[0]
	assert.Equal(t, "review", review.Name)
	assert.Equal(t, []string{"inbox"}, review.Params)
	assert.Equal(t, 30, review.DurationMin)
	assert.Equal(t, []string{"admin"}, review.Tags)
	assert.Equal(t, domain.PriorityHigh, review.Priority)
	assert.Equal(t, "morning", review.Block)
	assert.Equal(t, "review(inbox)", review.DisplayName())

	code := blocks[1].Tasks[1]
	assert.Equal(t, 180, code.DurationMin)
	assert.Equal(t, []string{"meeting"}, code.DependsOn)

	read := blocks[2].Tasks[1]
	assert.Equal(t, domain.PriorityMedium, read.Priority, "default priority")
}

func TestParse_TasksBeforeFirstBlockGoToDefault(t *testing.T) {
	blocks, err := Parse("stretch [5m]\n@work\nemail [15m]\n")
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, DefaultBlock, blocks[0].Label)
	assert.Equal(t, "stretch", blocks[0].Tasks[0].Name)
	assert.Equal(t, "work", blocks[1].Label)
}

func TestParse_MultipleDependencies(t *testing.T) {
	blocks, err := Parse("@b\na\nb\nc after:a,b after:d\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "d"}, blocks[0].Tasks[2].DependsOn)
}

func TestParse_ParamsMayContainSpaces(t *testing.T) {
	blocks, err := Parse("@b\nwrite(report, draft) [30m] #deepwork\n")
	require.NoError(t, err)

	task := blocks[0].Tasks[0]
	assert.Equal(t, "write", task.Name)
	assert.Equal(t, []string{"report", "draft"}, task.Params)
	assert.Equal(t, 30, task.DurationMin)
	assert.Equal(t, []string{"deepwork"}, task.Tags)
	assert.Equal(t, "write(report, draft)", task.DisplayName())
}

func TestCutTaskHead(t *testing.T) {
	tests := []struct {
		line, head, rest string
	}{
		{"review [30m]", "review", " [30m]"},
		{"review(inbox) [30m]", "review(inbox)", " [30m]"},
		{"write(a, b c) #x", "write(a, b c)", " #x"},
		{"solo", "solo", ""},
		{"open(unclosed [5m]", "open(unclosed", " [5m]"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			head, rest := cutTaskHead(tt.line)
			assert.Equal(t, tt.head, head)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestParse_MissingDurationIsZero(t *testing.T) {
	blocks, err := Parse("@b\nthink #deepwork\n")
	require.NoError(t, err)
	assert.Equal(t, 0, blocks[0].Tasks[0].DurationMin)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
		line    int
	}{
		{"bad duration", "@b\ntask [soon]\n", `invalid duration "soon"`, 2},
		{"bad priority", "@b\n\ntask p:urgent\n", `invalid priority "urgent"`, 3},
		{"stray word", "@b\ntask please\n", `unexpected "please"`, 2},
		{"duplicate block", "@b\nx\n@b\ny\n", `block "b" already declared on line 1`, 3},
		{"empty label", "@\nx\n", "block label is empty", 1},
		{"empty tag", "@b\nx #\n", "empty tag", 2},
		{"fractional minutes", "@b\nx [30s]\n", "whole, non-negative minutes", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax))
			assert.Contains(t, err.Error(), tt.wantMsg)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := map[string]int{"45m": 45, "2h": 120, "1h30m": 90, "0m": 0, "90m": 90}
	for in, want := range tests {
		got, err := ParseDuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDuration("-5m")
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "day.zbx")
	require.NoError(t, os.WriteFile(path, []byte(samplePlan), 0o644))

	blocks, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, blocks, 3)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.zbx"))
	assert.Error(t, err)
}

func TestTokenize_Kinds(t *testing.T) {
	tokens := Tokenize("@m\nx [5m] #t p:low after:y ???\n")
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []TokenKind{TokenBlock, TokenTask, TokenDuration, TokenTag, TokenPriority, TokenDependsOn, TokenUnknown}, kinds)
}
