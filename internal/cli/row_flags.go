package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/estimo/internal/domain"
	"github.com/spf13/cobra"
)

// rowFlags collects row field assignments from the command line. Only
// flags the user actually set become updates.
type rowFlags struct {
	feature     string
	assumptions string
	tracks      [3]string
	set         []string
}

func (f *rowFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.feature, "feature", "", "Feature name")
	cmd.Flags().StringVar(&f.assumptions, "assumptions", "", "Assumptions behind the estimate")
	for i, tr := range domain.Tracks {
		cmd.Flags().StringVar(&f.tracks[i], tr.String(), "", fmt.Sprintf("%s estimate as min,most,max", tr))
	}
	cmd.Flags().StringArrayVar(&f.set, "set", nil, "Set one numeric field, e.g. --set feMost=3 (repeatable)")
}

func (f *rowFlags) updates(cmd *cobra.Command) ([]domain.RowUpdate, error) {
	var out []domain.RowUpdate
	flags := cmd.Flags()

	if flags.Changed("feature") {
		out = append(out, domain.SetFeature(f.feature))
	}
	if flags.Changed("assumptions") {
		out = append(out, domain.SetAssumptions(f.assumptions))
	}
	for i, tr := range domain.Tracks {
		if !flags.Changed(tr.String()) {
			continue
		}
		vals, err := parseTriple(f.tracks[i])
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", tr, err)
		}
		lo, mid, hi := tr.Fields()
		out = append(out,
			domain.SetValue(lo, vals[0]),
			domain.SetValue(mid, vals[1]),
			domain.SetValue(hi, vals[2]),
		)
	}
	for _, s := range f.set {
		u, err := parseAssignment(s)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// parseTriple reads "min,most,max".
func parseTriple(s string) ([3]float64, error) {
	var out [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("expected min,most,max, got %q", s)
	}
	for i, p := range parts {
		v, err := parseHours(p)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

// parseAssignment reads "field=value" where field is a numeric field name
// in either camelCase or snake_case.
func parseAssignment(s string) (domain.RowUpdate, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return domain.RowUpdate{}, fmt.Errorf("invalid --set %q (expected field=value)", s)
	}
	field, ok := domain.ParseNumericField(strings.TrimSpace(name))
	if !ok {
		return domain.RowUpdate{}, fmt.Errorf("unknown field %q in --set", name)
	}
	v, err := parseHours(raw)
	if err != nil {
		return domain.RowUpdate{}, fmt.Errorf("invalid --set %q: %w", s, err)
	}
	return domain.SetValue(field, v), nil
}

func parseHours(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", strings.TrimSpace(s))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%q must be a finite, non-negative number", strings.TrimSpace(s))
	}
	return v, nil
}
