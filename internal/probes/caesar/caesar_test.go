package caesar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"cryptoprobe/internal/report"
)

func TestRun(t *testing.T) {
	r, err := Run(context.Background(), Options{Texts: []string{"SLCO HCLA QTMPC ETDDFP", "1234"}})
	require.NoError(t, err)
	require.Len(t, r.Findings, 2)

	ev := r.Findings[0].Evidence.(map[string]any)
	require.Equal(t, report.Fail, r.Findings[0].Status)
	require.Equal(t, "HARD WRAP FIBER TISSUE", ev["plaintext"])
	require.Equal(t, 15, ev["key"])
	require.Equal(t, "right", ev["shift"])

	require.Equal(t, report.Inconclusive, r.Findings[1].Status)
	require.True(t, r.HasFindings())
}
