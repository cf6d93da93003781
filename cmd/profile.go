package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gosteel/internal/diagram"
	"github.com/alexiusacademia/gosteel/internal/metrics"
	"github.com/alexiusacademia/gosteel/internal/section"
)

var (
	profileFlags   specFlags
	profilePreview bool
	profileWidth   int
	profilePoints  bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Build a section profile and report its properties",
	Long: `Build the closed 2D profile of a steel section from its family and
dimensions (mm) and print its geometric properties.

A section whose dimensions are missing or inconsistent has no profile;
a warning is logged and nothing is printed.

Examples:
  gosteel profile --family h-narrow -d H=300 -d B=150 -d t1=6.5 -d t2=9
  gosteel profile --family pipe -d D=165.2 -d t=5 --points
  gosteel profile --family estimated --area 0.002
  gosteel profile --section L-100x100x10 --axis weak
  gosteel profile --file member.yaml`,
	Run: runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)

	profileFlags.register(profileCmd)

	// Output options
	profileCmd.Flags().BoolVar(&profilePreview, "preview", true, "Show ASCII preview of the profile")
	profileCmd.Flags().IntVar(&profileWidth, "width", 40, "Preview width in characters")
	profileCmd.Flags().BoolVar(&profilePoints, "points", false, "List profile vertices")
}

func runProfile(cmd *cobra.Command, args []string) {
	spec, err := profileFlags.spec()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	p := section.Build(spec)
	metrics.RecordBuild(spec.Family.String(), p != nil)
	if p == nil {
		warnNoProfile(spec)
		return
	}
	p = p.Rotated(spec.Axis)
	props := p.CalculateProperties()

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     SECTION PROFILE - %s\n", spec.Family)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DIMENSIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, sym := range sortedSymbols(spec.Dims) {
		fmt.Fprintf(w, "  %s:\t%g mm\n", sym, spec.Dims[sym])
	}
	if spec.MemberArea > 0 {
		fmt.Fprintf(w, "  Member area:\t%g m²\n", spec.MemberArea)
	}
	fmt.Fprintf(w, "  Axis:\t%s\n", spec.Axis)
	w.Flush()
	fmt.Println()

	fmt.Println("SECTION GEOMETRY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Width:\t%.1f mm\n", props.Width/section.MMToM)
	fmt.Fprintf(w, "  Height:\t%.1f mm\n", props.Height/section.MMToM)
	fmt.Fprintf(w, "  Area:\t%.1f mm²\n", props.Area/sq(section.MMToM))
	fmt.Fprintf(w, "  Centroid:\t(%.2f, %.2f) mm\n", props.CentroidX/section.MMToM, props.CentroidY/section.MMToM)
	fmt.Fprintf(w, "  Ix:\t%.4g mm⁴\n", props.Ix/sq(sq(section.MMToM)))
	fmt.Fprintf(w, "  Iy:\t%.4g mm⁴\n", props.Iy/sq(sq(section.MMToM)))
	fmt.Fprintf(w, "  Outline:\t%d points, %d hole(s)\n", len(p.Outer), len(p.Holes))
	if spec.Family.IsHollow() {
		fmt.Fprintf(w, "  Wall:\thollow section\n")
	}
	w.Flush()
	fmt.Println()

	if profilePoints {
		fmt.Println("PROFILE VERTICES (m):")
		fmt.Println("───────────────────────────────────────────────────────────────")
		for i, r := range p.Rings() {
			name := "outer"
			if i > 0 {
				name = fmt.Sprintf("hole %d", i)
			}
			w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "  %s\tx\ty\n", name)
			for j, v := range r {
				fmt.Fprintf(w, "  %d\t%.5f\t%.5f\n", j+1, v.X, v.Y)
			}
			w.Flush()
			fmt.Println()
		}
	}

	if profilePreview {
		fmt.Println("SECTION PREVIEW:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Print(diagram.DrawASCIIProfile(p, profileWidth, 0))
		fmt.Println()
	}

	fmt.Print(diagram.DrawSummaryBox(spec.Family.String(), []string{
		fmt.Sprintf("A  = %.1f mm²", props.Area/sq(section.MMToM)),
		fmt.Sprintf("Ix = %.4g mm⁴", props.Ix/sq(sq(section.MMToM))),
		fmt.Sprintf("Iy = %.4g mm⁴", props.Iy/sq(sq(section.MMToM))),
	}))
	fmt.Println()
}

func sq(v float64) float64 { return v * v }
