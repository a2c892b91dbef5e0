package holidays

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/username/vacation-planner/pkg/dateutil"
)

// FileProvider implements Provider using a local text file, used as a
// fallback when the API is unreachable
type FileProvider struct {
	filePath string
	logger   *zap.Logger
	data     map[int][]Holiday // year -> holidays
}

// NewFileProvider creates a new FileProvider instance
func NewFileProvider(filePath string, logger *zap.Logger) *FileProvider {
	return &FileProvider{
		filePath: filePath,
		logger:   logger,
		data:     make(map[int][]Holiday),
	}
}

// Load loads holiday data from file
func (fp *FileProvider) Load() error {
	file, err := os.Open(fp.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lines := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: YYYY-MM-DD holiday name
		// Example: 2026-01-01 New Year's Day
		parts := strings.SplitN(line, " ", 2)
		if len(parts) < 2 {
			fp.logger.Warn("Invalid line format", zap.String("line", line))
			continue
		}

		date, err := dateutil.ParseDate(parts[0])
		if err != nil {
			fp.logger.Warn("Failed to parse date",
				zap.String("date", parts[0]),
				zap.Error(err))
			continue
		}

		fp.data[date.Year] = append(fp.data[date.Year], Holiday{
			Date: date,
			Name: strings.TrimSpace(parts[1]),
		})
		lines++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read holiday file: %w", err)
	}

	for year := range fp.data {
		sortHolidays(fp.data[year])
	}

	fp.logger.Info("Holiday file loaded",
		zap.String("file", fp.filePath),
		zap.Int("entries", lines),
		zap.Int("years", len(fp.data)))

	return nil
}

// HolidaysForYear returns the holidays loaded for the year
func (fp *FileProvider) HolidaysForYear(year int) ([]Holiday, error) {
	list, ok := fp.data[year]
	if !ok {
		return nil, fmt.Errorf("no holiday data for year %d in %s", year, fp.filePath)
	}
	return list, nil
}
