// batchdump packs demo scenes without a GPU and prints the resulting draw
// calls as YAML or as a per-batch log report.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/spritebatch/internal/config"
	"github.com/Faultbox/spritebatch/internal/engine/batch"
	"github.com/Faultbox/spritebatch/internal/engine/render"
	"github.com/Faultbox/spritebatch/internal/logger"
	"github.com/Faultbox/spritebatch/internal/pipeline"
	"github.com/Faultbox/spritebatch/internal/scene"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "dump":
		cmdDump(args)
	case "report":
		cmdReport(args)
	case "scenes":
		cmdScenes()
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`batchdump - headless sprite batch packer

Usage:
  batchdump <command> [options]

Commands:
  dump     Write packed draw calls as YAML
  report   Log every packed batch
  scenes   List demo scenes
  config   Write a starter config file for spritedemo

Options (dump, report):
  -scene N       Scene index (default 3)
  -frames N      Frames to pack (default 1)
  -capacity N    Vertex arena capacity (default 10240)
  -workers N     Parallel packing workers (default 1)
  -vertices      Include vertex data (dump only)
  -o FILE        Output file (dump only, default stdout)

Options (config):
  -o FILE        Output file (default stdout)
  -user          Write to the user config path read by spritedemo

Examples:
  batchdump dump -scene 0
  batchdump dump -scene 2 -frames 4 -vertices -o calls.yaml
  batchdump report -scene 3 -capacity 60
  batchdump config -user`)
}

type options struct {
	scene    int
	frames   int
	capacity int
	workers  int
	vertices bool
	output   string
}

func parseOptions(name string, args []string) options {
	var o options
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.IntVar(&o.scene, "scene", 3, "Scene index")
	fs.IntVar(&o.frames, "frames", 1, "Frames to pack")
	fs.IntVar(&o.capacity, "capacity", batch.DefaultCapacity, "Vertex arena capacity")
	fs.IntVar(&o.workers, "workers", 1, "Parallel packing workers")
	fs.BoolVar(&o.vertices, "vertices", false, "Include vertex data")
	fs.StringVar(&o.output, "o", "", "Output file")
	fs.Parse(args)

	if o.scene < 0 || o.scene >= len(scene.All) {
		fmt.Fprintf(os.Stderr, "Scene %d out of range [0, %d)\n", o.scene, len(scene.All))
		os.Exit(1)
	}
	return o
}

// Dump is the YAML document written by the dump command.
type Dump struct {
	Scene    string      `yaml:"scene"`
	Capacity int         `yaml:"capacity"`
	Frames   []FrameDump `yaml:"frames"`
}

// FrameDump is one packed frame.
type FrameDump struct {
	Tick  int        `yaml:"tick"`
	Calls []CallDump `yaml:"calls"`
}

// CallDump is one draw call, optionally with its vertices as [x, y, u, v].
type CallDump struct {
	Texture  uint64       `yaml:"texture"`
	Offset   int          `yaml:"offset"`
	Count    int          `yaml:"count"`
	Sprites  int          `yaml:"sprites"`
	Vertices [][4]float32 `yaml:"vertices,omitempty,flow"`
}

// record packs o.frames frames of the selected scene into rec and returns
// the arena capacity the packer ran with.
func record(o options, rec *render.Recorder) (int, error) {
	p := batch.New(batch.Config{Capacity: o.capacity, ValidateBatches: true})
	f := pipeline.NewFrame(p, rec, o.workers)
	table := scene.CatalogTable()

	for tick := 0; tick < o.frames; tick++ {
		if _, err := f.Run(context.Background(), scene.All[o.scene], table, tick); err != nil {
			return p.Capacity(), fmt.Errorf("frame %d: %w", tick, err)
		}
	}
	return p.Capacity(), nil
}

// buildDump converts recorded frames to the YAML document.
func buildDump(o options, capacity int, frames [][]render.Call) Dump {
	d := Dump{
		Scene:    scene.All[o.scene].Name,
		Capacity: capacity,
		Frames:   make([]FrameDump, len(frames)),
	}
	for tick, calls := range frames {
		fd := FrameDump{Tick: tick, Calls: make([]CallDump, len(calls))}
		for i, c := range calls {
			cd := CallDump{
				Texture: uint64(c.Texture),
				Offset:  c.Offset,
				Count:   c.Count,
				Sprites: c.Sprites(),
			}
			if o.vertices {
				cd.Vertices = make([][4]float32, len(c.Vertices))
				for j, v := range c.Vertices {
					cd.Vertices[j] = [4]float32{v.X, v.Y, v.U, v.V}
				}
			}
			fd.Calls[i] = cd
		}
		d.Frames[tick] = fd
	}
	return d
}

func writeDump(w io.Writer, d Dump) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

func cmdDump(args []string) {
	o := parseOptions("dump", args)

	rec := render.NewRecorder()
	capacity, err := record(o, rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if o.output != "" {
		f, err := os.Create(o.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := writeDump(out, buildDump(o, capacity, rec.Frames())); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing dump: %v\n", err)
		os.Exit(1)
	}
}

func cmdReport(args []string) {
	o := parseOptions("report", args)

	if err := logger.Init("info", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	rec := render.NewRecorder()
	rec.Report = true
	if _, err := record(o, rec); err != nil {
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d frames, %d draw calls in last frame\n", len(rec.Frames()), len(rec.Last()))
}

func cmdScenes() {
	for i, s := range scene.All {
		fmt.Printf("%d  %s\n", i, s.Name)
	}
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	output := fs.String("o", "", "Output file")
	user := fs.Bool("user", false, "Write to the user config path")
	fs.Parse(args)

	path := *output
	if *user {
		path = config.UserPath()
	}

	if err := writeConfig(os.Stdout, path, config.Default()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		os.Exit(1)
	}
	if path != "" {
		fmt.Printf("Wrote %s\n", path)
	}
}

// writeConfig saves cfg to path, or encodes it to stdout when path is empty.
func writeConfig(stdout io.Writer, path string, cfg *config.Config) error {
	if path == "" {
		return cfg.Encode(stdout)
	}
	return cfg.SaveTo(path)
}
