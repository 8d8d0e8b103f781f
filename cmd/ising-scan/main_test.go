package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ising-mc/internal/config"
	"ising-mc/internal/ising"
	"ising-mc/internal/persistence"
)

func TestBuildJobs(t *testing.T) {
	base := ising.DefaultConfig()
	jobs := buildJobs(base, []int64{7, 8}, []int{16, 32})
	require.Len(t, jobs, 4)

	assert.Equal(t, "L16-s7", jobs[0].Name)
	assert.Equal(t, "L32-s8", jobs[3].Name)
	assert.Equal(t, 32, jobs[3].Config.Width)
	assert.Equal(t, 32, jobs[3].Config.Height)
	assert.Equal(t, int64(8), jobs[3].Config.Seed)
	assert.Equal(t, base.Mode, jobs[3].Config.Mode)

	assert.Empty(t, buildJobs(base, nil, []int{16}))
}

func TestRunWritesSummaryAndDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "scan.db")
	settings, err := config.Load("ising-scan", []string{
		"--temperature", "3", "--target", "2", "--increment", "-0.5",
		"--block", "2", "--db", db,
	})
	require.NoError(t, err)

	jobs := buildJobs(settings.Sim, []int64{1, 2}, []int{8})
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), log.New(io.Discard), &out, settings, jobs, 2))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "L8-s1"))
	assert.Contains(t, lines[1], "samples=2")

	store, err := persistence.OpenSQLite(db)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.Runs()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}
