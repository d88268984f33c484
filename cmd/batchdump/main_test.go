package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/spritebatch/internal/config"
	"github.com/Faultbox/spritebatch/internal/engine/batch"
	"github.com/Faultbox/spritebatch/internal/engine/render"
)

func TestDumpSceneZero(t *testing.T) {
	o := options{scene: 0, frames: 2, capacity: 60, workers: 1, vertices: true}

	rec := render.NewRecorder()
	capacity, err := record(o, rec)
	if err != nil {
		t.Fatalf("record() error: %v", err)
	}

	var buf bytes.Buffer
	if err := writeDump(&buf, buildDump(o, capacity, rec.Frames())); err != nil {
		t.Fatalf("writeDump() error: %v", err)
	}

	var got Dump
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, buf.String())
	}

	if got.Capacity != 60 || len(got.Frames) != 2 {
		t.Fatalf("got capacity %d with %d frames, want 60 with 2", got.Capacity, len(got.Frames))
	}
	calls := got.Frames[1].Calls
	if len(calls) != 4 {
		t.Fatalf("frame 1 has %d calls, want 4", len(calls))
	}
	for i, c := range calls {
		if c.Offset != i*6 || c.Count != 6 || c.Sprites != 1 {
			t.Errorf("call %d = %+v, want offset %d count 6 sprites 1", i, c, i*6)
		}
		if len(c.Vertices) != 6 {
			t.Errorf("call %d has %d vertices, want 6", i, len(c.Vertices))
		}
	}
}

func TestDumpOmitsVertices(t *testing.T) {
	o := options{scene: 1, frames: 1, capacity: 60, workers: 1}

	rec := render.NewRecorder()
	capacity, err := record(o, rec)
	if err != nil {
		t.Fatalf("record() error: %v", err)
	}

	d := buildDump(o, capacity, rec.Frames())
	for _, c := range d.Frames[0].Calls {
		if c.Vertices != nil {
			t.Errorf("call at offset %d carries vertices without -vertices", c.Offset)
		}
	}
}

func TestRecordCapacityError(t *testing.T) {
	o := options{scene: 3, frames: 1, capacity: 60, workers: 1}

	if _, err := record(o, render.NewRecorder()); err == nil {
		t.Error("record() with capacity 60 for scene 3 succeeded, want error")
	}
}

func TestDumpReportsPackerCapacity(t *testing.T) {
	o := options{scene: 0, frames: 1, capacity: 0, workers: 1}

	rec := render.NewRecorder()
	capacity, err := record(o, rec)
	if err != nil {
		t.Fatalf("record() error: %v", err)
	}

	d := buildDump(o, capacity, rec.Frames())
	if d.Capacity != batch.DefaultCapacity {
		t.Errorf("dump capacity = %d, want the packer default %d", d.Capacity, batch.DefaultCapacity)
	}
}

func TestWriteConfigStdout(t *testing.T) {
	var buf bytes.Buffer
	if err := writeConfig(&buf, "", config.Default()); err != nil {
		t.Fatalf("writeConfig() error: %v", err)
	}

	var got config.Config
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, buf.String())
	}
	if got.Batch.Capacity != batch.DefaultCapacity {
		t.Errorf("batch.capacity = %d, want %d", got.Batch.Capacity, batch.DefaultCapacity)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("written config does not validate: %v", err)
	}
}

func TestWriteConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spritebatch", "config.yaml")

	var stdout bytes.Buffer
	if err := writeConfig(&stdout, path, config.Default()); err != nil {
		t.Fatalf("writeConfig() error: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("writeConfig() to a file also wrote %d bytes to stdout", stdout.Len())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	var got config.Config
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("config file is not valid YAML: %v", err)
	}
	if got.Graphics.Width != 640 || got.Graphics.Height != 480 {
		t.Errorf("graphics = %dx%d, want 640x480", got.Graphics.Width, got.Graphics.Height)
	}
}
