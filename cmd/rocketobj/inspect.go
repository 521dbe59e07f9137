package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Faultbox/rocketmesh/pkg/wavefront"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file.obj]",
	Short: "Print statistics of an OBJ file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd.OutOrStdout(), args[0])
	},
}

func runInspect(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	doc, err := wavefront.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	b := doc.Bounds()
	size := b.Size()
	fmt.Fprintf(w, "File:      %s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
	fmt.Fprintf(w, "Vertices:  %s\n", humanize.Comma(int64(len(doc.Vertices))))
	fmt.Fprintf(w, "Normals:   %s\n", humanize.Comma(int64(len(doc.Normals))))
	fmt.Fprintf(w, "TexCoords: %s\n", humanize.Comma(int64(len(doc.TexCoords))))
	fmt.Fprintf(w, "Faces:     %s\n", humanize.Comma(int64(doc.FaceCount())))
	fmt.Fprintf(w, "Bounds:    (%.4f, %.4f, %.4f) - (%.4f, %.4f, %.4f)\n",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	fmt.Fprintf(w, "Size:      %.4f x %.4f x %.4f\n", size.X, size.Y, size.Z)
	fmt.Fprintf(w, "Area:      %.6f\n", wavefront.SurfaceArea(doc))

	fmt.Fprintf(w, "\nGroups (%d):\n", len(doc.Groups))
	for _, g := range doc.Groups {
		fmt.Fprintf(w, "  %-24s %8s faces  %s\n", g.Name, humanize.Comma(int64(len(g.Faces))), g.Material)
	}

	for _, lib := range doc.MaterialLibs {
		mats, err := readMaterials(filepath.Join(filepath.Dir(path), lib))
		if err != nil {
			fmt.Fprintf(w, "\nMaterials %s: %v\n", lib, err)
			continue
		}
		fmt.Fprintf(w, "\nMaterials %s (%d):\n", lib, len(mats))
		for _, m := range mats {
			fmt.Fprintf(w, "  %-24s Kd %.3f %.3f %.3f  d %.2f\n", m.Name, m.Diffuse[0], m.Diffuse[1], m.Diffuse[2], m.Opacity)
		}
	}
	return nil
}

func readMaterials(path string) ([]wavefront.Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return wavefront.DecodeMaterials(f)
}
