package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/huangsam/trendplot/internal/contract"
	"github.com/huangsam/trendplot/schema"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunChart_MissingArgsPrintsUsage(t *testing.T) {
	called := false
	executor := func(context.Context, *contract.Config, contract.HistoryManager) error {
		called = true
		return errors.New("should not run")
	}

	var buf bytes.Buffer
	c := &cobra.Command{Use: "results <json> <title>"}
	c.SetOut(&buf)

	require.NoError(t, chartSetupWrapper(2)(c, []string{"input.json"}))
	runChart(schema.ResultsChart, 2, executor)(c, []string{"input.json"})

	assert.False(t, called)
	assert.Contains(t, buf.String(), "Usage:")
	assert.Contains(t, buf.String(), "results <json> <title>")
}

func TestRunChart_SetsChartKind(t *testing.T) {
	var got schema.ChartKind
	executor := func(_ context.Context, c *contract.Config, _ contract.HistoryManager) error {
		got = c.Chart
		return nil
	}

	runChart(schema.SizeChart, 1, executor)(&cobra.Command{}, []string{"size.json"})
	assert.Equal(t, schema.SizeChart, got)
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)

	assert.Contains(t, buf.String(), "trendplot CLI")
	assert.Contains(t, buf.String(), "Version: dev")
}
