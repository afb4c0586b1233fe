package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contactkeval/option-pricer/internal/analysis"
)

func WriteJSON(res *analysis.Result, outdir string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "greeks.json"), b, 0644)
}

func WriteCSV(rows []analysis.Row, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "greeks.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	headers := []string{"underlying", "expiry", "strike", "type", "spot", "years_to_expiry", "risk_free_rate", "quote", "implied_vol", "premium", "delta", "gamma", "theta", "vega", "vanna", "charm", "error"}
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			r.Underlying,
			r.Expiry,
			fmt.Sprintf("%.2f", r.Strike),
			r.Type,
			fmt.Sprintf("%.2f", r.Spot),
			fmt.Sprintf("%.6f", r.YearsToExpiry),
			fmt.Sprintf("%.4f", r.RiskFreeRate),
			fmt.Sprintf("%.4f", r.Quote),
			fmt.Sprintf("%.5f", r.ImpliedVol),
			fmt.Sprintf("%.4f", r.Premium),
		}
		if r.Greeks != nil {
			g := r.Greeks
			row = append(row,
				fmt.Sprintf("%.6f", g.Delta),
				fmt.Sprintf("%.6f", g.Gamma),
				fmt.Sprintf("%.6f", g.Theta),
				fmt.Sprintf("%.6f", g.Vega),
				fmt.Sprintf("%.6f", g.Vanna),
				fmt.Sprintf("%.6f", g.Charm))
		} else {
			// failed rows have no greeks; keep the column count stable
			row = append(row, "", "", "", "", "", "")
		}
		row = append(row, r.Error)
		_ = w.Write(row)
	}
	return nil
}
