package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/alexiusacademia/gosteel/internal/catalog"
	"github.com/alexiusacademia/gosteel/internal/diagram"
	"github.com/alexiusacademia/gosteel/internal/section"
)

var (
	catalogFamily string
	catalogChart  bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the standard section catalog",
	Long: `Browse the table of standard steel sections.

The built-in catalog is used unless --catalog or GOSTEEL_CATALOG names
a YAML file with the same layout.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog sections",
	Long: `List catalog sections with their area and unit mass.

Examples:
  gosteel catalog list
  gosteel catalog list --family pipe --chart`,
	Run: runCatalogList,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show DESIGNATION",
	Short: "Show one catalog section",
	Args:  cobra.ExactArgs(1),
	Run:   runCatalogShow,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)

	catalogListCmd.Flags().StringVar(&catalogFamily, "family", "", "Only list one section family")
	catalogListCmd.Flags().BoolVar(&catalogChart, "chart", false, "Plot unit mass of the listed sections")
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Load()
	}
	return catalog.LoadFile(path)
}

func runCatalogList(cmd *cobra.Command, args []string) {
	cat, err := loadCatalog(catalogFile)
	if err != nil {
		fmt.Printf("Error loading catalog: %v\n", err)
		return
	}

	families := cat.Families()
	if catalogFamily != "" {
		f, err := section.ParseFamily(catalogFamily)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		families = []section.Family{f}
	}

	pr := message.NewPrinter(language.English)
	var masses []float64

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     STEEL SECTION CATALOG")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	for _, f := range families {
		entries := cat.ByFamily(f)
		if len(entries) == 0 {
			continue
		}
		fmt.Printf("%s:\n", strings.ToUpper(f.String()))
		fmt.Println("───────────────────────────────────────────────────────────────")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Designation\tArea (mm²)\tMass (kg/m)\n")
		fmt.Fprintf(w, "  ───────────\t──────────\t───────────\n")
		for _, e := range entries {
			area := e.Profile().CalculateProperties().Area / sq(section.MMToM)
			mass := e.UnitMass()
			masses = append(masses, mass)
			fmt.Fprintf(w, "  %s\t%s\t%s\n", e.Designation, pr.Sprintf("%.0f", area), pr.Sprintf("%.2f", mass))
		}
		w.Flush()
		fmt.Println()
	}

	if catalogChart && len(masses) > 1 {
		fmt.Println(asciigraph.Plot(masses,
			asciigraph.Height(10),
			asciigraph.Precision(1),
			asciigraph.Caption("unit mass (kg/m) in list order"),
		))
		fmt.Println()
	}
}

func runCatalogShow(cmd *cobra.Command, args []string) {
	e, err := lookupSection(args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	p := e.Profile()
	props := p.CalculateProperties()
	pr := message.NewPrinter(language.English)

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Designation:\t%s\n", e.Designation)
	fmt.Fprintf(w, "  Family:\t%s\n", e.Family)
	for _, sym := range sortedSymbols(e.Dims) {
		fmt.Fprintf(w, "  %s:\t%g mm\n", sym, e.Dims[sym])
	}
	fmt.Fprintf(w, "  Area:\t%s mm²\n", pr.Sprintf("%.0f", props.Area/sq(section.MMToM)))
	fmt.Fprintf(w, "  Ix:\t%s mm⁴\n", pr.Sprintf("%.0f", props.Ix/sq(sq(section.MMToM))))
	fmt.Fprintf(w, "  Iy:\t%s mm⁴\n", pr.Sprintf("%.0f", props.Iy/sq(sq(section.MMToM))))
	fmt.Fprintf(w, "  Unit mass:\t%s kg/m\n", pr.Sprintf("%.2f", e.UnitMass()))
	w.Flush()
	fmt.Println()
	fmt.Print(diagram.DrawASCIIProfile(p, 40, 0))
	fmt.Println()
}
