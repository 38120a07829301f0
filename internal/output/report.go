package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/zimtax/taxplanner/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes the report in the named format to a timestamped file in dir
// and returns the paths written. "all" writes every format the report has data for.
func GenerateReport(report *Report, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var paths []string
		for _, name := range []string{"console", "detailed-csv", "payroll-csv", "json"} {
			f := GetFormatterByName(name)
			if (name == "detailed-csv" && report.Projection == nil) || (name == "payroll-csv" && report.Payroll == nil) {
				continue
			}
			path, err := WriteFormatted(f, report, dir)
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	path, err := WriteFormatted(f, report, dir)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// SaveConfiguration writes a configuration back out as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return os.WriteFile(filename, b, 0o644)
}
