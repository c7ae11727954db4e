package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorderGathers(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveStageDuration("render", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("render", ResultSuccess)
	pr.IncBuildOutcome("success")
	pr.AddPagesRendered(12)
	pr.AddSoftSkips(1)
	pr.AddBrokenLinks(0)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	require.True(t, names["hypersite_stage_duration_seconds"])
	require.True(t, names["hypersite_pages_rendered_total"])
}

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("render", time.Second)
	r.ObserveBuildDuration(time.Second)
	r.IncStageResult("render", ResultFatal)
	r.IncBuildOutcome("failed")
	r.AddPagesRendered(3)
	r.AddSoftSkips(1)
	r.AddBrokenLinks(2)
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveStageDuration("render", time.Second)
	pr.IncBuildOutcome("success")
	pr.AddPagesRendered(1)
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncBuildOutcome("success")
	pr.AddPagesRendered(4)

	path := filepath.Join(t.TempDir(), "metrics", "hypersite.prom")
	require.NoError(t, WriteTextfile(reg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "hypersite_build_outcomes_total")
	require.Contains(t, string(data), `outcome="success"`)
	require.Contains(t, string(data), "hypersite_pages_rendered_total 4")

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}
