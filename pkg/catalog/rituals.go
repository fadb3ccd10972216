package catalog

import (
	"context"
	"net/url"
	"strings"

	"github.com/trayshop/storefront/pkg/apiclient"
	"github.com/trayshop/storefront/pkg/logger"
)

func (s *Service) Rituals(ctx context.Context) ([]Ritual, error) {
	return list[Ritual](ctx, s.api, ritualsPath)
}

// Ritual returns a single ritual, from cache when possible.
func (s *Service) Ritual(ctx context.Context, id apiclient.ID) (Ritual, error) {
	return cachedGet(ctx, s, s.rituals, ritualsPath, id)
}

// SearchRituals matches rituals by name on the server.
func (s *Service) SearchRituals(ctx context.Context, name string) ([]Ritual, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingQuery
	}
	return list[Ritual](ctx, s.api, ritualsPath+"/search", apiclient.WithQuery(url.Values{"name": {name}}))
}

// RitualsByLunarDate lists rituals falling on a lunar date such as "15/1".
func (s *Service) RitualsByLunarDate(ctx context.Context, date string) ([]Ritual, error) {
	if strings.TrimSpace(date) == "" {
		return nil, ErrMissingQuery
	}
	return list[Ritual](ctx, s.api, itemPath(ritualsPath, "lunar", date))
}

func (s *Service) RitualsBySolarDate(ctx context.Context, date string) ([]Ritual, error) {
	if strings.TrimSpace(date) == "" {
		return nil, ErrMissingQuery
	}
	return list[Ritual](ctx, s.api, itemPath(ritualsPath, "solar", date))
}

// CreateRitual requires an admin session on the server side.
func (s *Service) CreateRitual(ctx context.Context, r Ritual) (Ritual, error) {
	var created Ritual
	if err := s.api.Post(ctx, ritualsPath, r, &created); err != nil {
		return Ritual{}, err
	}
	if created.ID != "" {
		s.rituals.Put(created.ID, created)
	}
	return created, nil
}

func (s *Service) UpdateRitual(ctx context.Context, id apiclient.ID, r Ritual) (Ritual, error) {
	if id == "" {
		return Ritual{}, ErrMissingID
	}
	s.rituals.Remove(id)

	var updated Ritual
	if err := s.api.Put(ctx, itemPath(ritualsPath, id.String()), r, &updated); err != nil {
		return Ritual{}, err
	}
	if updated.ID == "" {
		updated.ID = id
	}
	s.rituals.Put(id, updated)
	return updated, nil
}

func (s *Service) DeleteRitual(ctx context.Context, id apiclient.ID) error {
	if id == "" {
		return ErrMissingID
	}
	s.rituals.Remove(id)
	if err := s.api.Delete(ctx, itemPath(ritualsPath, id.String()), nil); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "ritual deleted", logger.ProductID(id.String()))
	return nil
}
