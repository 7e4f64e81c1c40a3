package io

import (
	"io/ioutil"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fractal-notebooks/dla"
	"github.com/fractal-notebooks/dla/geom"
)

var testParticles = []dla.SnapshotParticle{
	{Pos: geom.Vec{0, 0, 0}, Order: 0, Generation: 0},
	{Pos: geom.Vec{1, 0, 0}, Order: 1, Generation: 1},
	{Pos: geom.Vec{1.5, -0.5, 2}, Order: 2, Generation: 2},
}

func writeAndRead(t *testing.T, format string) []string {
	dir, err := ioutil.TempDir("", "dla_io_test")
	if err != nil {
		t.Fatal(err.Error())
	}
	defer os.RemoveAll(dir)

	fname := path.Join(dir, "snap."+format)
	if err := WriteSnapshot(fname, format, testParticles); err != nil {
		t.Fatal(err.Error())
	}

	text, err := ioutil.ReadFile(fname)
	if err != nil {
		t.Fatal(err.Error())
	}
	return strings.Split(strings.TrimRight(string(text), "\n"), "\n")
}

func TestWriteCSV(t *testing.T) {
	lines := writeAndRead(t, "csv")
	assert.Equal(t, len(testParticles)+1, len(lines))
	assert.Equal(t, "x,y,z,order,generation", lines[0])
	assert.Equal(t, "0,0,0,0,0", lines[1])
	assert.Equal(t, "1.5,-0.5,2,2,2", lines[3])
}

func TestWritePLY(t *testing.T) {
	lines := writeAndRead(t, "ply")
	assert.Equal(t, "ply", lines[0])
	assert.Equal(t, "element vertex 3", lines[3])

	headerEnd := -1
	for i, line := range lines {
		if line == "end_header" {
			headerEnd = i
			break
		}
	}
	assert.True(t, headerEnd > 0, "no end_header line")
	assert.Equal(t, len(testParticles), len(lines)-headerEnd-1)
	assert.Equal(t, "1 0 0 1 1", lines[headerEnd+2])
}

func TestWriteTable(t *testing.T) {
	lines := writeAndRead(t, "txt")
	assert.Equal(t, len(testParticles)+1, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "#"), "comment header")

	cols := strings.Fields(lines[3])
	assert.Equal(t, []string{"1.5", "-0.5", "2", "2", "2"}, cols)
}

func TestWriteSnapshotBadFormat(t *testing.T) {
	dir, err := ioutil.TempDir("", "dla_io_test")
	if err != nil {
		t.Fatal(err.Error())
	}
	defer os.RemoveAll(dir)

	err = WriteSnapshot(path.Join(dir, "snap.xyz"), "xyz", testParticles)
	assert.Error(t, err)
}
