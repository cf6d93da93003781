package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gosteel/internal/diagram"
	"github.com/alexiusacademia/gosteel/internal/metrics"
)

var (
	diagramFlags  specFlags
	diagramOutput string
)

var diagramCmd = &cobra.Command{
	Use:   "diagram",
	Short: "Draw an annotated section diagram",
	Long: `Draw the section outline with its dimension annotations.

SVG output is written directly at a fixed font size; other extensions
(png, pdf, jpg, eps, tif) are rendered through a plotting backend.
Without --output the dimension legend is printed to the terminal.

Examples:
  gosteel diagram --family channel -d H=200 -d B=80 -d t1=7.5 -d t2=11 -o c200.svg
  gosteel diagram --section P-165.2x5 -o pipe.png`,
	Run: runDiagram,
}

func init() {
	rootCmd.AddCommand(diagramCmd)

	diagramFlags.register(diagramCmd)
	diagramCmd.Flags().StringVarP(&diagramOutput, "output", "o", "", "Export diagram to file (svg, png, pdf)")
}

func runDiagram(cmd *cobra.Command, args []string) {
	spec, err := diagramFlags.spec()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	d, err := diagram.Annotate(spec)
	metrics.RecordBuild(spec.Family.String(), err == nil)
	if err != nil {
		warnNoProfile(spec)
		return
	}

	if diagramOutput == "" {
		fmt.Println()
		fmt.Printf("  %s\n\n", d.Title)
		fmt.Print(diagram.DrawASCIIProfile(d.Profile, 40, 0))
		fmt.Println()
		fmt.Print(diagram.DrawLegend(d))
		fmt.Println()
		return
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(diagramOutput)), ".")
	if format == "svg" {
		err = writeSVGFile(d, diagramOutput)
	} else {
		err = diagram.ExportImage(d, diagramOutput)
	}
	if err != nil {
		fmt.Printf("Error exporting diagram: %v\n", err)
		return
	}
	if format == "" {
		format = "png"
	}
	metrics.DiagramsTotal.WithLabelValues(format).Inc()
	fmt.Printf("  ✓ Diagram exported to: %s\n", diagramOutput)
}

func writeSVGFile(d *diagram.Diagram, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := diagram.WriteSVG(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
