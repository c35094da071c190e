package discovery

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"Go_Discovery/src/metrics"
	"Go_Discovery/src/types"
)

type Config struct {
	RadiusKm      float64
	NewWithinDays int
	Cutoff        int
	Now           func() time.Time
}

func DefaultConfig() Config {
	return Config{
		RadiusKm:      DefaultRadiusKm,
		NewWithinDays: DefaultNewWithinDays,
		Cutoff:        DefaultCutoff,
		Now:           time.Now,
	}
}

type Service struct {
	store         types.CatalogStore
	filter        *DistanceFilter
	newWithinDays int
	cutoff        int
	logger        *zap.Logger
}

func NewService(store types.CatalogStore, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.NewWithinDays <= 0 {
		cfg.NewWithinDays = DefaultNewWithinDays
	}
	if cfg.Cutoff <= 0 {
		cfg.Cutoff = DefaultCutoff
	}

	return &Service{
		store:         store,
		filter:        NewDistanceFilter(FilterConfig{RadiusKm: cfg.RadiusKm, Now: cfg.Now}),
		newWithinDays: cfg.NewWithinDays,
		cutoff:        cfg.Cutoff,
		logger:        logger,
	}
}

// Discover validates the raw coordinate, loads a fresh catalog snapshot and
// returns the ranked sections for it.
func (s *Service) Discover(ctx context.Context, latRaw, lonRaw string) (types.Discovery, error) {
	customer, err := ValidateCoordinates(latRaw, lonRaw)
	if err != nil {
		return types.Discovery{}, err
	}

	start := time.Now()
	catalog, err := s.store.Restaurants(ctx)
	metrics.ObserveCatalogLoad(start, err)
	if err != nil {
		s.logger.Error("catalog load failed", zap.Error(err))
		return types.Discovery{}, fmt.Errorf("load catalog: %w", err)
	}

	candidates := s.filter.Filter(customer, catalog)

	response := Assemble(
		RankPopular(candidates, s.cutoff),
		RankNew(candidates, s.newWithinDays, s.cutoff),
		RankNearby(candidates, s.cutoff),
	)

	for _, section := range response.Sections {
		metrics.IncSection(section.Title)
	}

	s.logger.Debug("discovery computed",
		zap.Float64("lat", customer.Lat),
		zap.Float64("lon", customer.Lon),
		zap.Int("catalog", len(catalog)),
		zap.Int("candidates", len(candidates)),
		zap.Int("sections", len(response.Sections)),
	)

	return response, nil
}
