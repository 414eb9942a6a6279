package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oowekyala/mlir-zsh-plugin/internal/helptext"
)

func loadFixture(t *testing.T, name string) []helptext.Line {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	lines, err := helptext.Tokenize(string(data))
	require.NoError(t, err)
	return lines
}

func classifyFixture(t *testing.T, name string) []*Record {
	t.Helper()
	c := NewClassifier(nil, DefaultDenylist())
	return c.Classify(loadFixture(t, name))
}

func findRecord(records []*Record, name string) *Record {
	for _, rec := range records {
		if rec.Name == name {
			return rec
		}
	}
	return nil
}

func TestClassify_Categories(t *testing.T) {
	records := classifyFixture(t, "help_text.txt")

	tests := []struct {
		name     string
		category Category
	}{
		{"--color", CategoryGeneric},
		{"--help", CategoryGeneric},
		{"--allow-unregistered-dialect", CategoryInherited},
		{"--verify-each", CategoryInherited},
		{"--mlir-disable-threading", CategoryToolOption},
		{"--mlir-pretty-debuginfo", CategoryToolOption},
		{"--affine-loop-tile", CategoryPass},
		{"--cse", CategoryPass},
		{"--sparsifier", CategoryPipeline},
	}

	for _, tt := range tests {
		rec := findRecord(records, tt.name)
		require.NotNil(t, rec, "expected record for %s", tt.name)
		assert.Equal(t, tt.category, rec.Category, "category of %s", tt.name)
	}
}

func TestClassify_DenylistedOptionsAreDropped(t *testing.T) {
	records := classifyFixture(t, "help_text.txt")

	assert.Nil(t, findRecord(records, "--opt-bisect-limit"))
	assert.Nil(t, findRecord(records, "--print-options"))
}

func TestClassify_PassSubOptions(t *testing.T) {
	records := classifyFixture(t, "help_text.txt")

	tile := findRecord(records, "--affine-loop-tile")
	require.NotNil(t, tile)
	require.Len(t, tile.SubOptions, 4)

	// Declaration order is preserved, not sorted
	var names []string
	for _, sub := range tile.SubOptions {
		names = append(names, sub.Name)
	}
	assert.Equal(t, []string{"cache-size", "separate", "tile-size", "tile-sizes"}, names)

	tileSize := tile.SubOptions[2]
	assert.Equal(t, StyleAttached, tileSize.Style)
	assert.Equal(t, "<uint>", tileSize.ValueHint)
	assert.Equal(t, "Use this tile size for all loops", tileSize.Description)

	sep := tile.SubOptions[1]
	assert.Equal(t, StyleFlag, sep.Style)

	// Sub-options never surface as top-level records
	assert.Nil(t, findRecord(records, "--tile-size"))
	assert.Nil(t, findRecord(records, "tile-size"))

	copyGen := findRecord(records, "--affine-data-copy-generate")
	require.NotNil(t, copyGen)
	assert.Equal(t, "fast-mem-capacity", copyGen.SubOptions[0].Name)
}

func TestClassify_PassWithoutSubOptions(t *testing.T) {
	records := classifyFixture(t, "help_text.txt")

	cse := findRecord(records, "--cse")
	require.NotNil(t, cse)
	assert.Empty(t, cse.SubOptions)
	assert.Equal(t, "Eliminate common sub-expressions", cse.Description)
}

func TestClassify_EnumValuedSubOption(t *testing.T) {
	records := classifyFixture(t, "help_text.txt")

	complexConv := findRecord(records, "--convert-complex-to-llvm")
	require.NotNil(t, complexConv)
	require.Len(t, complexConv.SubOptions, 1)

	rng := complexConv.SubOptions[0]
	assert.Equal(t, "complex-range", rng.Name)
	require.Len(t, rng.Choices, 3)
	assert.Equal(t, Choice{Value: "improved", Description: "improved"}, rng.Choices[0])
	assert.Equal(t, Choice{Value: "basic", Description: "basic (default)"}, rng.Choices[1])
	assert.Equal(t, Choice{Value: "none", Description: "none"}, rng.Choices[2])
}

func TestClassify_EnumValuedTopLevelOption(t *testing.T) {
	records := classifyFixture(t, "help_text.txt")

	timing := findRecord(records, "--mlir-timing-display")
	require.NotNil(t, timing)
	assert.Equal(t, CategoryToolOption, timing.Category)
	require.Len(t, timing.Choices, 2)
	// Declaration order is the authoritative enum order
	assert.Equal(t, "list", timing.Choices[0].Value)
	assert.Equal(t, "tree", timing.Choices[1].Value)
}

func TestClassify_PipelineSection(t *testing.T) {
	records := classifyFixture(t, "help_text.txt")

	sparsifier := findRecord(records, "--sparsifier")
	require.NotNil(t, sparsifier)
	assert.Equal(t, CategoryPipeline, sparsifier.Category)
	// Wrapped description text is folded into the record
	assert.Contains(t, sparsifier.Description, "converting it into efficient sparse and dense code")
	require.Len(t, sparsifier.SubOptions, 2)

	strategy := sparsifier.SubOptions[1]
	assert.Equal(t, "parallelization-strategy", strategy.Name)
	assert.Len(t, strategy.Choices, 3)

	// The dedent after the pipeline block leaves the pass catalog:
	// options that follow are classified against the general section again
	threading := findRecord(records, "--mlir-disable-threading")
	require.NotNil(t, threading)
	assert.Equal(t, CategoryToolOption, threading.Category)
}

func TestClassify_DeclarationOrderIsStable(t *testing.T) {
	records := classifyFixture(t, "help_text.txt")

	var passes []string
	for _, rec := range records {
		if rec.Category == CategoryPass {
			passes = append(passes, rec.Name)
		}
	}
	assert.Equal(t, []string{
		"--affine-data-copy-generate",
		"--affine-loop-tile",
		"--canonicalize",
		"--convert-complex-to-llvm",
		"--cse",
	}, passes)
}

func TestMerge_PrefersRicherDescription(t *testing.T) {
	visible := classifyFixture(t, "help_text.txt")
	hidden := classifyFixture(t, "help_text_hidden.txt")

	merged := Merge(visible, hidden)

	threading := findRecord(merged, "--mlir-disable-threading")
	require.NotNil(t, threading)
	assert.False(t, threading.Hidden)
	assert.Contains(t, threading.Description, "overrides creation and use of threads")
}

func TestMerge_MarksHiddenOnlyRecords(t *testing.T) {
	visible := classifyFixture(t, "help_text.txt")
	hidden := classifyFixture(t, "help_text_hidden.txt")

	merged := Merge(visible, hidden)

	assumeVerified := findRecord(merged, "--mlir-print-assume-verified")
	require.NotNil(t, assumeVerified)
	assert.True(t, assumeVerified.Hidden)

	// A record present in both listings stays visible
	stats := findRecord(merged, "--mlir-pass-statistics")
	require.NotNil(t, stats)
	assert.False(t, stats.Hidden)
}

func TestFilter_HiddenPolicy(t *testing.T) {
	visible := classifyFixture(t, "help_text.txt")
	hidden := classifyFixture(t, "help_text_hidden.txt")
	merged := Merge(visible, hidden)

	withoutHidden := Filter(merged, false)
	assert.Nil(t, findRecord(withoutHidden, "--mlir-print-assume-verified"))

	withHidden := Filter(merged, true)
	assert.NotNil(t, findRecord(withHidden, "--mlir-print-assume-verified"))
}

func TestFilter_DropsInheritedOptions(t *testing.T) {
	records := classifyFixture(t, "help_text.txt")
	filtered := Filter(records, true)

	assert.Nil(t, findRecord(filtered, "--allow-unregistered-dialect"))
	assert.Nil(t, findRecord(filtered, "--verify-each"))
	assert.NotNil(t, findRecord(filtered, "--mlir-pretty-debuginfo"))
}

func TestClassify_FailOpenOnUnknownSection(t *testing.T) {
	text := "Exotic Options:\n\n  --something-new - A flag from a future version\n"
	lines, err := helptext.Tokenize(text)
	require.NoError(t, err)

	c := NewClassifier(nil, nil)
	records := c.Classify(lines)

	require.Len(t, records, 1)
	// Unknown sections keep the current state; the initial state treats
	// unprefixed names as inherited, never as an error
	assert.Equal(t, CategoryInherited, records[0].Category)
}

func TestClassify_OptionLineWithoutSeparatorResetsCurrent(t *testing.T) {
	text := "Passes:\n" +
		"  --good-pass - A pass\n" +
		"  --weird-line-without-separator\n" +
		"    =stray - should not attach anywhere\n"
	lines, err := helptext.Tokenize(text)
	require.NoError(t, err)

	c := NewClassifier(nil, nil)
	records := c.Classify(lines)

	require.Len(t, records, 1)
	assert.Equal(t, "--good-pass", records[0].Name)
	assert.Empty(t, records[0].Choices)
}
