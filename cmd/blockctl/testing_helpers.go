package main

import (
	"os"
	"path/filepath"
	"testing"
)

const testSchema = `
root = "Level"

block "Level" {
  field "level_id"    { type = "u8" }
  field "setting"     { type = "u8" }
  field "name_length" {
    type  = "u8"
    value = size("name")
  }
  field "name"    { type = "bytes" }
  field "samples" { type = "array(u16)" }
}
`

const testInput = `
level_id = 3
setting  = 2
name     = "Example Level"
samples  = [60, 180]
`

// writeFixture writes content to name inside dir and returns the path.
func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// resetFlags restores every global flag to its default.
func resetFlags(t *testing.T) {
	t.Helper()
	verbose, quiet, jsonOut, noColor = false, false, false, true
	rootName, inputFormat = "", ""
	buildOutput, buildTree, buildFullSync = "", false, false
	treeDepth, treeValues, treeExpand, treeEmpty = 0, false, false, false
	t.Cleanup(func() { noColor = false })
}
