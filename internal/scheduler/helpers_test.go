package scheduler

import (
	"testing"

	"github.com/alexanderramin/zibox/internal/domain"
	"github.com/alexanderramin/zibox/internal/testutil"
	"github.com/stretchr/testify/require"
)

var (
	dur   = testutil.WithDuration
	after = testutil.WithAfter
	tags  = testutil.WithTags
	prio  = testutil.WithPriority
	task  = testutil.NewTestTask
	block = testutil.NewTestBlock
	plan  = testutil.NewTestPlan
)

func mustGraph(t *testing.T, p *domain.Plan) *Graph {
	t.Helper()
	g, err := BuildGraph(p)
	require.NoError(t, err)
	return g
}

func clock(s string) domain.Clock { return domain.MustParseClock(s) }
