package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalizePathsDedupesAndSorts(t *testing.T) {
	wd, err := filepath.Abs(".")
	require.NoError(t, err)

	paths, err := canonicalizePaths([]string{"b.bit", "a.bit", "b.bit"})
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(wd, "a.bit"),
		filepath.Join(wd, "b.bit"),
	}, paths)
}
