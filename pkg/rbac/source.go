package rbac

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// RoleSource provides role definitions.
type RoleSource interface {
	Load(ctx context.Context) (map[string]Role, error)
}

type inMemRoleSource struct {
	roles map[string]Role
}

// NewInMemRoleSource copies roles into a source.
func NewInMemRoleSource(roles map[string]Role) RoleSource {
	cp := make(map[string]Role, len(roles))
	for name, r := range roles {
		cp[name] = Role{Permissions: slices.Clone(r.Permissions), Inherits: slices.Clone(r.Inherits)}
	}
	return &inMemRoleSource{roles: cp}
}

func (s *inMemRoleSource) Load(context.Context) (map[string]Role, error) {
	return s.roles, nil
}

type yamlRoleSource struct {
	read func() ([]byte, error)
}

// NewYAMLRoleSource reads role definitions from r when loaded.
func NewYAMLRoleSource(r io.Reader) RoleSource {
	return &yamlRoleSource{read: func() ([]byte, error) { return io.ReadAll(r) }}
}

// NewYAMLFileRoleSource reads role definitions from the file at path.
func NewYAMLFileRoleSource(path string) RoleSource {
	return &yamlRoleSource{read: func() ([]byte, error) { return os.ReadFile(path) }}
}

func (s *yamlRoleSource) Load(context.Context) (map[string]Role, error) {
	raw, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}

	var roles map[string]Role
	if err := yaml.Unmarshal(raw, &roles); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}
	return roles, nil
}
