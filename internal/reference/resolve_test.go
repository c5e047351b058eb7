package reference

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/ideocoverage/internal/cytoband"
	"github.com/inodb/ideocoverage/internal/genome"
)

func sampleBands(t *testing.T) cytoband.Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cytoBand.txt")
	content := strings.Join([]string{
		"chr1\t0\t400\tp36\tgneg",
		"chr1\t400\t500\tp11\tacen",
		"chr1\t500\t1000\tq44\tgneg",
		"chr17\t0\t200\tp13\tgneg",
		"chr17\t200\t260\tp11\tacen",
		"chr17\t260\t600\tq25\tgneg",
		"chrX\t0\t800\tq28\tgneg",
		"",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	table, err := cytoband.NewLoader(path).Load()
	require.NoError(t, err)
	return table
}

func TestResolve_FallsBackToCytoband(t *testing.T) {
	bands := sampleBands(t)

	lengths, err := Resolve(nil, bands)
	require.NoError(t, err)

	chr1, _ := genome.Parse("chr1")
	chr17, _ := genome.Parse("chr17")
	assert.Equal(t, Lengths{chr1: 1000, chr17: 600, genome.ChrX: 800}, lengths)
	assert.Equal(t, []genome.Chromosome{chr1, chr17, genome.ChrX}, lengths.Chromosomes())
	assert.Equal(t, int64(1000), lengths.Longest())
}

func TestResolve_PrefersFASTA(t *testing.T) {
	bands := sampleBands(t)
	idx := NewIndexFromLengths("ref.fa", map[string]int64{
		"chr1":  1200,
		"chrX":  0,
		"chr2":  5000, // not in the cytoband table
		"chrM":  16569,
		"chr17": 650,
	})

	lengths, err := Resolve(idx, bands)
	require.NoError(t, err)

	chr1, _ := genome.Parse("chr1")
	chr17, _ := genome.Parse("chr17")
	assert.Equal(t, Lengths{chr1: 1200, chr17: 650, genome.ChrX: 800}, lengths)
}

func TestResolve_SingleSequenceRestricts(t *testing.T) {
	bands := sampleBands(t)
	idx := NewIndexFromLengths("chr17.fa", map[string]int64{"chr17": 610})

	lengths, err := Resolve(idx, bands)
	require.NoError(t, err)

	chr17, _ := genome.Parse("chr17")
	assert.Equal(t, Lengths{chr17: 610}, lengths)
	assert.Equal(t, int64(610), lengths.Longest())
}

func TestResolve_SingleSequenceWithoutBands(t *testing.T) {
	bands := sampleBands(t)

	for _, name := range []string{"chr2", "chrM", "scaffold_12"} {
		t.Run(name, func(t *testing.T) {
			idx := NewIndexFromLengths("single.fa", map[string]int64{name: 1000})
			_, err := Resolve(idx, bands)

			var me *genome.MissingLengthError
			require.True(t, errors.As(err, &me), "got %v", err)
			assert.Equal(t, name, me.Chrom)
			assert.Equal(t, "single.fa", me.Path)
		})
	}
}

func TestResolve_EmptyTable(t *testing.T) {
	lengths, err := Resolve(NewIndexFromLengths("ref.fa", map[string]int64{"chr1": 10, "chr2": 20}), cytoband.Table{})
	require.NoError(t, err)
	assert.Empty(t, lengths)
	assert.Zero(t, lengths.Longest())
}
