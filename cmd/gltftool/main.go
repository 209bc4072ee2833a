// gltftool is a CLI utility for inspecting glTF assets and their resampled
// animation.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/jordan4ibanez/minetest-gltf/internal/config"
	"github.com/jordan4ibanez/minetest-gltf/internal/logger"
	"github.com/jordan4ibanez/minetest-gltf/pkg/loader"
	"github.com/jordan4ibanez/minetest-gltf/pkg/math"
	"github.com/jordan4ibanez/minetest-gltf/pkg/model"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch command {
	case "info":
		err = cmdInfo(cfg, args)
	case "anim":
		err = cmdAnim(cfg, args)
	case "dump":
		err = cmdDump(cfg, args)
	case "batch":
		err = cmdBatch(cfg, args)
	case "config":
		err = cmdConfig(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gltftool - glTF asset and animation utility

Usage:
  gltftool [global options] <command> [options]

Global options:
  -config <path>     Config file (default ./config.yaml or user config dir)
  -debug             Enable debug logging
  -materials         Extract material factors
  -no-animation      Skip animation resampling
  -max-frames <n>    Maximum resampled frames per clip
  -log-file <path>   Also write logs to a rotated file

Commands:
  info <file>                  Show geometry and animation summary
  anim <file> [-node N]        Show the resampled timeline, or one bone's frames
  dump <file> [-o out.yaml]    Export the resampled clip as YAML
  batch <file|dir>...          Load many assets and report the outcome
  config [path]                Print or save the effective configuration

Examples:
  gltftool info fox.glb
  gltftool anim fox.glb -node 3
  gltftool -max-frames 600 dump fox.glb -o fox.yaml
  gltftool batch ./models`)
}

func loadOptions(cfg *config.Config) []loader.Option {
	return []loader.Option{
		loader.WithMaterials(cfg.Loader.Materials),
		loader.WithAnimation(cfg.Loader.Animation),
		loader.WithMaxFrames(cfg.Loader.MaxFrames),
		loader.WithScene(cfg.Loader.Scene),
		loader.WithLogger(logger.Named("loader")),
	}
}

func cmdInfo(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: gltftool info <file>")
	}

	asset, err := loader.Load(args[0], loadOptions(cfg)...)
	if err != nil {
		return err
	}

	m := asset.Model
	fmt.Printf("Asset:      %s\n", asset.Name)
	fmt.Printf("Scene:      %s\n", m.Scene)
	fmt.Printf("Primitives: %d\n", len(m.Primitives))
	fmt.Printf("Vertices:   %d\n", m.VertexCount())
	if cfg.Loader.Materials {
		fmt.Printf("Materials:  %d\n", len(m.Materials))
	}

	byMode := make(map[model.Mode]int)
	for _, p := range m.Primitives {
		byMode[p.Mode]++
	}
	modes := make([]model.Mode, 0, len(byMode))
	for mode := range byMode {
		modes = append(modes, mode)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	for _, mode := range modes {
		fmt.Printf("  %-16s %d\n", mode, byMode[mode])
	}

	fmt.Println()
	if !asset.IsAnimated() {
		fmt.Println("Animated:   no")
		return nil
	}
	tl := asset.Clip.Timeline
	fmt.Println("Animated:   yes")
	fmt.Printf("Clip:       %s\n", asset.Clip.Name)
	fmt.Printf("Bones:      %d\n", len(asset.Clip.Bones))
	fmt.Printf("Frames:     %d\n", tl.RequiredFrames)
	fmt.Printf("Duration:   %.3fs\n", tl.Duration())
	return nil
}

func cmdAnim(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("anim", flag.ExitOnError)
	node := fs.Int("node", -1, "Print every frame of this node")
	fs.Parse(reorderArgs(args))

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: gltftool anim <file> [-node N]")
	}

	asset, err := loader.Load(fs.Arg(0), loadOptions(cfg)...)
	if err != nil {
		return err
	}
	if !asset.IsAnimated() {
		return fmt.Errorf("%s has no usable animation", asset.Name)
	}

	clip := asset.Clip
	tl := clip.Timeline

	if *node < 0 {
		fmt.Printf("Clip:         %s\n", clip.Name)
		fmt.Printf("Time range:   %.5f .. %.5f\n", tl.MinTime, tl.MaxTime)
		fmt.Printf("Min distance: %.5f\n", tl.MinDistance)
		fmt.Printf("Frames:       %d\n", tl.RequiredFrames)
		fmt.Printf("Delta:        %.5f\n", tl.Delta)
		fmt.Println()
		fmt.Println("Bones:")
		for _, n := range clip.Nodes() {
			bone := clip.Bones[n]
			fmt.Printf("  node %-5d frames %-6d weights %d\n", n, bone.Frames(), bone.Weights.Len())
		}
		return nil
	}

	bone, ok := clip.Bones[*node]
	if !ok {
		return fmt.Errorf("node %d is not animated", *node)
	}
	fmt.Printf("%-6s %-9s %-30s %-40s %s\n", "frame", "time", "translation", "rotation (xyzw)", "scale")
	for i := 0; i < bone.Frames(); i++ {
		t := bone.Translations.Values[i]
		r := math.QuatToXYZW(bone.Rotations.Values[i])
		s := bone.Scales.Values[i]
		fmt.Printf("%-6d %-9.4f %-30s %-40s %s\n", i, bone.Translations.Timestamps[i],
			fmt.Sprintf("%.3f %.3f %.3f", t[0], t[1], t[2]),
			fmt.Sprintf("%.4f %.4f %.4f %.4f", r[0], r[1], r[2], r[3]),
			fmt.Sprintf("%.3f %.3f %.3f", s[0], s[1], s[2]))
	}
	return nil
}

func cmdDump(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	out := fs.String("o", "", "Output file (default stdout)")
	fs.Parse(reorderArgs(args))

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: gltftool dump <file> [-o out.yaml]")
	}

	asset, err := loader.Load(fs.Arg(0), loadOptions(cfg)...)
	if err != nil {
		return err
	}
	if !asset.IsAnimated() {
		return fmt.Errorf("%s has no usable animation", asset.Name)
	}

	data, err := marshalClip(asset.Clip)
	if err != nil {
		return err
	}
	if *out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d bones, %d frames)\n", *out, len(asset.Clip.Bones), asset.Clip.Timeline.RequiredFrames)
	return nil
}

func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", args[0])
		return nil
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

// reorderArgs moves flags ahead of positional arguments so that
// "anim file.glb -node 3" parses like "anim -node 3 file.glb".
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if len(a) > 1 && a[0] == '-' {
			flags = append(flags, a)
			if !containsEquals(a) && i+1 < len(args) {
				flags = append(flags, args[i+1])
				i++
			}
			continue
		}
		positional = append(positional, a)
	}
	return append(flags, positional...)
}

func containsEquals(s string) bool {
	for _, c := range s {
		if c == '=' {
			return true
		}
	}
	return false
}
