package output_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zimtax/taxplanner/internal/config"
	"github.com/zimtax/taxplanner/internal/domain"
	"github.com/zimtax/taxplanner/internal/output"
)

func TestSaveConfigurationRoundTrip(t *testing.T) {
	parser := config.NewInputParser()
	cfg := parser.CreateExampleConfiguration()
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, output.SaveConfiguration(cfg, path))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Company.Name, loaded.Company.Name)
	assert.Len(t, loaded.Scenarios, len(cfg.Scenarios))
	assert.Len(t, loaded.Employees, len(cfg.Employees))
}

func TestGenerateReport(t *testing.T) {
	report := output.NewReport(&domain.ProjectionReport{
		Company:   "Empty Co",
		Scenarios: []domain.ScenarioSummary{{Name: "Base", IsBase: true}},
	}, nil, domain.Currency{Code: "USD", Symbol: "$", DecimalPlaces: 2})
	dir := t.TempDir()

	paths, err := output.GenerateReport(report, "json", dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	_, err = os.Stat(paths[0])
	assert.NoError(t, err)

	paths, err = output.GenerateReport(report, "csv-summary", dir)
	require.NoError(t, err)
	assert.Equal(t, ".csv", filepath.Ext(paths[0]))

	// payroll-csv is skipped because the report has no payroll section
	paths, err = output.GenerateReport(report, "all", dir)
	require.NoError(t, err)
	assert.Len(t, paths, 3)

	_, err = output.GenerateReport(report, "payroll-csv", dir)
	assert.ErrorIs(t, err, output.ErrMissingSection)
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	_, err := output.GenerateReport(&output.Report{}, "definitely-not-a-format", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, output.ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), "unsupported report format")
	assert.Contains(t, err.Error(), "Try one of:")
}
