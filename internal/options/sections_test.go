package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSectionTable(t *testing.T) {
	table := DefaultSectionTable()

	assert.Equal(t, StateGeneric, table.StateFor("Generic Options:", StateGeneral))
	assert.Equal(t, StateGeneric, table.StateFor("Color Options:", StateGeneral))
	assert.Equal(t, StateGeneral, table.StateFor("General options:", StatePasses))
	assert.Equal(t, StateGeneral, table.StateFor("IR2Vec Options:", StatePasses))
	assert.Equal(t, StatePasses, table.StateFor("Passes:", StateGeneral))
	assert.Equal(t, StatePipelines, table.StateFor("Pass Pipelines:", StatePasses))
}

func TestSectionTable_UnknownHeaderKeepsState(t *testing.T) {
	table := DefaultSectionTable()

	assert.Equal(t, StatePasses, table.StateFor("OPTIONS:", StatePasses))
	assert.Equal(t, StateGeneric, table.StateFor("Something New:", StateGeneric))
}

func TestSectionTable_Merge(t *testing.T) {
	table := DefaultSectionTable()

	err := table.Merge(map[string]string{"Custom Passes:": "passes"})
	require.NoError(t, err)
	assert.Equal(t, StatePasses, table.StateFor("Custom Passes:", StateGeneral))

	err = table.Merge(map[string]string{"Bad:": "nonsense"})
	assert.Error(t, err)
}

func TestParseSectionTable_Invalid(t *testing.T) {
	_, err := ParseSectionTable([]byte("sections: [not, a, map]"))
	assert.Error(t, err)

	_, err = ParseSectionTable([]byte("sections:\n  \"X:\": bogus\n"))
	assert.Error(t, err)
}

func TestStateCategory(t *testing.T) {
	assert.Equal(t, CategoryToolOption, StateGeneral.Category("--mlir-print-debuginfo"))
	assert.Equal(t, CategoryInherited, StateGeneral.Category("--verify-each"))
	assert.Equal(t, CategoryPass, StatePasses.Category("--canonicalize"))
	assert.Equal(t, CategoryPipeline, StatePipelines.Category("--sparsifier"))
	assert.Equal(t, CategoryGeneric, StateGeneric.Category("--help"))
}
