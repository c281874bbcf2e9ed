package output

import (
	"github.com/rpgo/pension-tracker/internal/domain"
)

// GenerateReport writes report in the named format to a timestamped file in dir and
// returns the written paths. "all" writes the verbose console, detailed CSV and HTML reports.
func GenerateReport(dir string, report *domain.ProjectionReport, format string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var paths []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}, HTMLFormatter{}} {
			path, err := WriteFormattedTo(dir, f, report, FileExtension(f))
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	}

	f, err := LookupFormatter(format)
	if err != nil {
		return nil, err
	}
	path, err := WriteFormattedTo(dir, f, report, FileExtension(f))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}
