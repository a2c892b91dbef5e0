package holidays

import (
	"fmt"

	"go.uber.org/zap"
)

// CompositeProvider implements Provider with fallback strategy
// Primary: NagerProvider (API)
// Fallback: FileProvider (local file)
type CompositeProvider struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// NewCompositeProvider creates a new CompositeProvider
func NewCompositeProvider(primary, fallback Provider, logger *zap.Logger) *CompositeProvider {
	return &CompositeProvider{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// HolidaysForYear returns holidays from the primary provider, falling
// back to the secondary on failure
func (cp *CompositeProvider) HolidaysForYear(year int) ([]Holiday, error) {
	list, err := cp.primary.HolidaysForYear(year)
	if err == nil {
		return list, nil
	}

	cp.logger.Warn("Primary holiday provider failed, falling back",
		zap.Int("year", year),
		zap.Error(err))

	if cp.fallback == nil {
		return nil, fmt.Errorf("primary holiday provider failed and no fallback configured: %w", err)
	}

	list, fallbackErr := cp.fallback.HolidaysForYear(year)
	if fallbackErr != nil {
		return nil, fmt.Errorf("primary and fallback providers both failed: primary=%w, fallback=%v", err, fallbackErr)
	}

	cp.logger.Info("Using fallback holiday data", zap.Int("year", year))

	return list, nil
}
