/*
 * main.go, part of molviz.
 *
 * Copyright 2025 The molviz authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/vg"

	mol "github.com/molviz/molviz"
	"github.com/molviz/molviz/camera"
	"github.com/molviz/molviz/driver"
	"github.com/molviz/molviz/internal/config"
	"github.com/molviz/molviz/internal/tui"
	"github.com/molviz/molviz/render"
)

var (
	configFile string
	outFile    string
	mdiOptions string
	frameRate  int
	scale      float64
	widthCm    float64
	heightCm   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "molviz",
		Short: "strict XYZ molecule viewer",
		Long: "molviz reads XYZ coordinate files with strict validation and shows them:\n" +
			"interactively in the terminal, as image snapshots, or as text summaries.\n" +
			"An external computational driver can push fresh coordinates over a socket.",
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	viewCmd := &cobra.Command{
		Use:   "view [file.xyz]",
		Short: "interactive terminal viewer",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}
	viewCmd.Flags().StringVar(&mdiOptions, "mdi", "", "follow an external driver (\"-role ENGINE -port 8021 ...\")")
	viewCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	viewCmd.Flags().Float64Var(&scale, "scale", 0.4, "sphere scale, fraction of the vdW radius")

	renderCmd := &cobra.Command{
		Use:   "render [file.xyz]",
		Short: "render a snapshot image (png/svg/pdf by extension)",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default: input name with .png)")
	renderCmd.Flags().Float64Var(&scale, "scale", 0.4, "sphere scale, fraction of the vdW radius")
	renderCmd.Flags().Float64Var(&widthCm, "width", 15, "image width in cm")
	renderCmd.Flags().Float64Var(&heightCm, "height", 15, "image height in cm")

	infoCmd := &cobra.Command{
		Use:   "info [file.xyz]",
		Short: "print a structure summary",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	trajCmd := &cobra.Command{
		Use:   "traj [file.xyz]",
		Short: "per-frame statistics for a multi-frame file",
		Args:  cobra.ExactArgs(1),
		RunE:  runTraj,
	}

	serveCmd := &cobra.Command{
		Use:   "serve [file.xyz]",
		Short: "run headless as an engine for an external driver",
		Args:  cobra.ExactArgs(1),
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&mdiOptions, "mdi", "", "driver option string (default from config)")

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfig,
	}

	rootCmd.AddCommand(viewCmd, renderCmd, infoCmd, trajCmd, serveCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func cameraFromConfig(c *config.CameraConfig) *camera.Controller {
	cam := camera.New()
	cam.Distance = c.Distance
	cam.Rotation = r3.NewRotation(c.Pitch, r3.Vec{X: 1})
	cam.RotateSensitivity = c.RotateSensitivity
	cam.PanSpeed = c.PanSpeed
	cam.ZoomSpeed = c.ZoomSpeed
	cam.MinDistance = c.MinDistance
	cam.MaxDistance = c.MaxDistance
	return cam
}

//frame points cam at m. An explicitly configured distance wins over the
//automatic framing.
func frame(cam *camera.Controller, m *mol.Molecule, c *config.CameraConfig) {
	cam.LookAt(m)
	if c.Distance != camera.DefaultDistance {
		cam.Distance = c.Distance
	}
}

func parseHexColor(s string) (color.RGBA, error) {
	t := strings.TrimPrefix(s, "#")
	if len(t) != 6 {
		return color.RGBA{}, fmt.Errorf("bad color %q, want #rrggbb", s)
	}
	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("fps") {
		frameRate = cfg.Viewer.FPS
	}
	if !cmd.Flags().Changed("scale") {
		scale = cfg.Render.Scale
	}
	frames, err := mol.XYZTrajFileRead(args[0])
	if err != nil {
		return err
	}
	cam := cameraFromConfig(&cfg.Camera)
	frame(cam, frames[0], &cfg.Camera)
	opts := tui.Options{FPS: frameRate, Scale: scale, ShowHelp: cfg.Viewer.ShowHelp}
	if cmd.Flags().Changed("mdi") {
		optstr := mdiOptions
		if optstr == "" {
			optstr = cfg.Driver.Options
		}
		dopts, err := driver.ParseOptions(optstr)
		if err != nil {
			return err
		}
		engine := driver.NewEngine(frames[0], dopts)
		go func() {
			if err := engine.Run(); err != nil {
				log.Printf("molviz: driver engine stopped: %v", err)
			}
		}()
		opts.Source = engine
	}
	return tui.Run(tui.New(frames, cam, opts))
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("scale") {
		scale = cfg.Render.Scale
	}
	if !cmd.Flags().Changed("width") {
		widthCm = cfg.Render.WidthCm
	}
	if !cmd.Flags().Changed("height") {
		heightCm = cfg.Render.HeightCm
	}
	m, err := mol.XYZFileRead(args[0])
	if err != nil {
		return err
	}
	cam := cameraFromConfig(&cfg.Camera)
	frame(cam, m, &cfg.Camera)
	bg, err := parseHexColor(cfg.Render.Background)
	if err != nil {
		return err
	}
	ropts := render.Options{
		Width:      vg.Length(widthCm) * vg.Centimeter,
		Height:     vg.Length(heightCm) * vg.Centimeter,
		Scale:      scale,
		Background: bg,
	}
	out := outFile
	if out == "" {
		out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".png"
	}
	if err := render.SnapshotFile(m, cam, ropts, out); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d atoms)\n", out, m.Len())
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	m, err := mol.XYZFileRead(args[0])
	if err != nil {
		return err
	}
	c := m.Center()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "atoms\t%d\n", m.Len())
	fmt.Fprintf(w, "comment\t%s\n", strings.TrimSpace(m.Comment))
	fmt.Fprintf(w, "formula\t%s\n", m.Formula())
	fmt.Fprintf(w, "centroid\t%.4f %.4f %.4f\n", c.X, c.Y, c.Z)
	fmt.Fprintf(w, "bounding radius\t%.4f\n", m.BoundingRadius())
	fmt.Fprintf(w, "radius of gyration\t%.4f\n", m.Rgyr())
	if err := w.Flush(); err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, a := range m.Atoms {
		counts[a.Element]++
	}
	labels := make([]string, 0, len(counts))
	for k := range counts {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ELEMENT\tCOUNT\tMASS\tVDW")
	totalMass := 0.0
	allKnown := true
	for _, el := range labels {
		mass, ok := mol.AtomicMass(el)
		massStr := "?"
		if ok {
			massStr = strconv.FormatFloat(mass, 'f', 3, 64)
			totalMass += mass * float64(counts[el])
		} else {
			allKnown = false
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%.2f\n", el, counts[el], massStr, mol.VdwRadius(el))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if allKnown && m.Len() > 0 {
		fmt.Printf("\ntotal mass: %.3f\n", totalMass)
	}
	return nil
}

func runTraj(cmd *cobra.Command, args []string) error {
	frames, err := mol.XYZTrajFileRead(args[0])
	if err != nil {
		return err
	}
	data := make([]float64, len(frames))
	for i, f := range frames {
		data[i] = f.Rgyr()
	}
	fmt.Printf("%s: %d frames of %s\n\n", args[0], len(frames), frames[0].Formula())
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption("radius of gyration per frame"),
	)
	fmt.Println(graph)
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "mean\t%.4f\n", stat.Mean(data, nil))
	fmt.Fprintf(w, "stddev\t%.4f\n", stat.StdDev(data, nil))
	fmt.Fprintf(w, "min\t%.4f\n", floats.Min(data))
	fmt.Fprintf(w, "max\t%.4f\n", floats.Max(data))
	return w.Flush()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := mol.XYZFileRead(args[0])
	if err != nil {
		return err
	}
	optstr := mdiOptions
	if optstr == "" {
		optstr = cfg.Driver.Options
	}
	dopts, err := driver.ParseOptions(optstr)
	if err != nil {
		return err
	}
	engine := driver.NewEngine(m, dopts)
	log.Printf("molviz: serving %s (%d atoms) to the driver at %s", args[0], m.Len(), dopts.Addr())
	if err := engine.Run(); err != nil {
		return err
	}
	log.Printf("molviz: driver said EXIT, shutting down")
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := "molviz.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}
