package catalog

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/trayshop/storefront/pkg/apiclient"
	"github.com/trayshop/storefront/pkg/logger"
)

func (s *Service) Trays(ctx context.Context) ([]Tray, error) {
	return list[Tray](ctx, s.api, traysPath)
}

// Tray returns a single tray, from cache when possible.
func (s *Service) Tray(ctx context.Context, id apiclient.ID) (Tray, error) {
	return cachedGet(ctx, s, s.trays, traysPath, id)
}

// TraysByRitual lists the trays suggested for a ritual.
func (s *Service) TraysByRitual(ctx context.Context, ritualID apiclient.ID) ([]Tray, error) {
	if ritualID == "" {
		return nil, ErrMissingID
	}
	return list[Tray](ctx, s.api, itemPath(traysPath, "ritual", ritualID.String()))
}

func (s *Service) TraysByRegion(ctx context.Context, region string) ([]Tray, error) {
	if strings.TrimSpace(region) == "" {
		return nil, ErrMissingQuery
	}
	return list[Tray](ctx, s.api, itemPath(traysPath, "region", region))
}

func (s *Service) TraysByCategory(ctx context.Context, category string) ([]Tray, error) {
	if strings.TrimSpace(category) == "" {
		return nil, ErrMissingQuery
	}
	return list[Tray](ctx, s.api, itemPath(traysPath, "category", category))
}

// TraysByPriceRange lists trays priced within [min, max], both inclusive.
func (s *Service) TraysByPriceRange(ctx context.Context, min, max int64) ([]Tray, error) {
	if min < 0 || max < min {
		return nil, ErrInvalidPriceRange
	}
	q := url.Values{
		"minPrice": {strconv.FormatInt(min, 10)},
		"maxPrice": {strconv.FormatInt(max, 10)},
	}
	return list[Tray](ctx, s.api, traysPath+"/price", apiclient.WithQuery(q))
}

func (s *Service) CreateTray(ctx context.Context, t Tray) (Tray, error) {
	var created Tray
	if err := s.api.Post(ctx, traysPath, t, &created); err != nil {
		return Tray{}, err
	}
	if created.ID != "" {
		s.trays.Put(created.ID, created)
	}
	return created, nil
}

func (s *Service) UpdateTray(ctx context.Context, id apiclient.ID, t Tray) (Tray, error) {
	if id == "" {
		return Tray{}, ErrMissingID
	}
	s.trays.Remove(id)

	var updated Tray
	if err := s.api.Put(ctx, itemPath(traysPath, id.String()), t, &updated); err != nil {
		return Tray{}, err
	}
	if updated.ID == "" {
		updated.ID = id
	}
	s.trays.Put(id, updated)
	return updated, nil
}

func (s *Service) DeleteTray(ctx context.Context, id apiclient.ID) error {
	if id == "" {
		return ErrMissingID
	}
	s.trays.Remove(id)
	if err := s.api.Delete(ctx, itemPath(traysPath, id.String()), nil); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "tray deleted", logger.ProductID(id.String()))
	return nil
}
