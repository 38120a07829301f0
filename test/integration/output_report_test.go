package integration

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zimtax/taxplanner/internal/config"
	"github.com/zimtax/taxplanner/internal/domain"
	"github.com/zimtax/taxplanner/internal/output"
)

func buildReport(t *testing.T) *output.Report {
	t.Helper()
	cfg, engine := load(t)
	projection, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	payroll := engine.RunPayroll(cfg)
	cur, ok := engine.Rates.Currency(cfg.Rules.BaseCurrency)
	require.True(t, ok)
	return output.NewReport(projection, &payroll, cur)
}

func TestGenerateAllReports(t *testing.T) {
	report := buildReport(t)
	dir := t.TempDir()

	paths, err := output.GenerateReport(report, "all", dir)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), p)
		assert.True(t, strings.HasPrefix(filepath.Base(p), "zimtax_"), p)
	}
}

func TestSummaryCSVTotals(t *testing.T) {
	report := buildReport(t)

	paths, err := output.GenerateReport(report, "csv", t.TempDir())
	require.NoError(t, err)
	require.Len(t, paths, 1)

	f, err := os.Open(paths[0])
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "TotalTax", rows[0][9])
	assert.Equal(t, "Base", rows[1][0])
	assert.Equal(t, "88250.40", rows[1][9])
	assert.Equal(t, "No allowances", rows[2][0])
	assert.Equal(t, "95172.00", rows[2][9])
}

func TestPayrollCSVHasTotalRow(t *testing.T) {
	report := buildReport(t)

	paths, err := output.GenerateReport(report, "payroll", t.TempDir())
	require.NoError(t, err)

	b, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(string(b))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "emp-001", rows[1][0])
	assert.Equal(t, "755.16", rows[1][17])
	assert.Equal(t, "TOTAL", rows[3][0])
}

func TestJSONReportDecodes(t *testing.T) {
	report := buildReport(t)

	b, err := output.GetFormatterByName("json").Format(report)
	require.NoError(t, err)

	var decoded struct {
		Projection domain.ProjectionReport   `json:"projection"`
		Payroll    domain.PayrollBatchResult `json:"payroll"`
	}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Len(t, decoded.Projection.Scenarios, 3)
	assertDecimal(t, "88250.4", decoded.Projection.Scenarios[0].TotalTax)
	assertDecimal(t, "2500", decoded.Payroll.Totals.TotalGross)
}

func TestConsoleReportMentionsEveryScenario(t *testing.T) {
	report := buildReport(t)

	b, err := output.GetFormatterByName("console").Format(report)
	require.NoError(t, err)
	text := string(b)
	for _, name := range []string{"Base", "No allowances", "ZiG exports", "Nyasha Dube", "Kuda Banda"} {
		assert.Contains(t, text, name)
	}
	assert.Contains(t, text, "$88,250.40")
}

func TestUnknownFormatIsRejected(t *testing.T) {
	_, err := output.GenerateReport(buildReport(t), "pdf", t.TempDir())
	require.ErrorIs(t, err, output.ErrUnsupportedFormat)
}

func TestSaveConfigurationRoundTrip(t *testing.T) {
	cfg, _ := load(t)
	path := filepath.Join(t.TempDir(), "saved.yaml")

	require.NoError(t, output.SaveConfiguration(cfg, path))

	reloaded, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Company.Name, reloaded.Company.Name)
	assert.True(t, cfg.Company.OpeningLosses.Equal(reloaded.Company.OpeningLosses))
	require.Len(t, reloaded.Scenarios, len(cfg.Scenarios))
	assert.Equal(t, "zig-exports", reloaded.Scenarios[2].ID)
	assert.True(t, reloaded.Scenarios[2].Drivers.CurrencyMix["ZWG"].Equal(dec("0.40")))
	require.Len(t, reloaded.Employees, 2)
	assert.Equal(t, cfg.Seed, reloaded.Seed)
}
