package calendar

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadHolidays читает YAML-файл вида
//
//	"2025":
//	  - "2025-01-01"
//	  - "2025-01-06"
//
// Пустой путь означает отсутствие праздников
func LoadHolidays(path string) (map[string][]string, error) {
	if path == "" {
		return map[string][]string{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("calendar: read holidays file %s: %w", path, err)
	}

	holidays := make(map[string][]string)
	if err := yaml.Unmarshal(data, &holidays); err != nil {
		return nil, fmt.Errorf("calendar: parse holidays file %s: %w", path, err)
	}

	return holidays, nil
}
