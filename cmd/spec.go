package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gosteel/internal/catalog"
	"github.com/alexiusacademia/gosteel/internal/section"
)

// specFlags are the section input flags shared by profile, diagram and
// extrude.
type specFlags struct {
	family      string
	dims        []string
	file        string
	designation string
	axis        string
	memberArea  float64
}

func (f *specFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.family, "family", "", "Section family (e.g. h-wide, channel, pipe)")
	cmd.Flags().StringArrayVarP(&f.dims, "dim", "d", nil, "Dimension in mm as SYMBOL=VALUE, repeatable (e.g. -d H=300 -d B=150)")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Path to section JSON or YAML file")
	cmd.Flags().StringVarP(&f.designation, "section", "s", "", "Catalog designation (e.g. H-300x150x6.5x9)")
	cmd.Flags().StringVar(&f.axis, "axis", "", "Member orientation: strong, weak or both (default strong)")
	cmd.Flags().Float64Var(&f.memberArea, "area", 0, "Member cross-section area in m² (estimated family)")
	cmd.MarkFlagsMutuallyExclusive("family", "file", "section")
	cmd.MarkFlagsOneRequired("family", "file", "section")
}

// spec resolves the flags into a builder input. Flags given alongside
// --file or --section override the loaded values.
func (f *specFlags) spec() (section.Spec, error) {
	var spec section.Spec

	switch {
	case f.file != "":
		s, err := section.LoadFromFile(f.file)
		if err != nil {
			return spec, err
		}
		spec = *s
	case f.designation != "":
		e, err := lookupSection(f.designation)
		if err != nil {
			return spec, err
		}
		spec = e.Spec(section.AxisStrong)
		spec.Dims = copyDims(e.Dims)
	default:
		family, err := section.ParseFamily(f.family)
		if err != nil {
			return spec, err
		}
		spec.Family = family
	}

	if spec.Dims == nil {
		spec.Dims = section.Dims{}
	}
	for _, kv := range f.dims {
		sym, val, ok := strings.Cut(kv, "=")
		if !ok {
			return spec, fmt.Errorf("dimension %q: expected SYMBOL=VALUE", kv)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return spec, fmt.Errorf("dimension %q: %w", kv, err)
		}
		spec.Dims[strings.TrimSpace(sym)] = v
	}

	if f.axis != "" {
		axis, err := section.ParseAxis(f.axis)
		if err != nil {
			return spec, err
		}
		spec.Axis = axis
	}
	if spec.Axis == "" {
		spec.Axis = section.AxisStrong
	}
	if f.memberArea > 0 {
		spec.MemberArea = f.memberArea
	}
	return spec, nil
}

func copyDims(d section.Dims) section.Dims {
	out := make(section.Dims, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// lookupSection finds a designation in GOSTEEL_CATALOG, or in the
// built-in catalog when that is unset.
func lookupSection(designation string) (catalog.Entry, error) {
	cat, err := loadCatalog(catalogFile)
	if err != nil {
		return catalog.Entry{}, err
	}
	e, ok := cat.Lookup(designation)
	if !ok {
		return catalog.Entry{}, fmt.Errorf("unknown section %q", designation)
	}
	return e, nil
}

// warnNoProfile logs why a spec produced no profile. Callers skip the
// member instead of failing.
func warnNoProfile(spec section.Spec) {
	reason := "no profile"
	if _, err := section.ParseDims(spec.Family, spec.Dims, spec.MemberArea); err != nil {
		reason = err.Error()
	}
	logger.Warn("section has no profile, skipping",
		zap.Stringer("family", spec.Family),
		zap.Any("dims", spec.Dims),
		zap.String("reason", reason),
	)
}

func sortedSymbols(d section.Dims) []string {
	syms := make([]string, 0, len(d))
	for k := range d {
		syms = append(syms, k)
	}
	sort.Strings(syms)
	return syms
}
