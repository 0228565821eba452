package ports

import (
	"context"

	"github.com/erjac77/f5-reconciler/internal/core/domain"
)

// ResourceBinding is the remote CRUD capability set for one named resource
// kind. The engine is generic over this interface; the platform adapter
// supplies one binding per kind.
type ResourceBinding interface {
	Kind() domain.ResourceKind
	Exists(ctx context.Context, id domain.ResourceIdentity) (bool, error)
	Read(ctx context.Context, id domain.ResourceIdentity) (domain.RemoteObject, error)
	Create(ctx context.Context, id domain.ResourceIdentity, fields map[string]any) (domain.RemoteObject, error)
	Update(ctx context.Context, id domain.ResourceIdentity, fields map[string]any) (domain.RemoteObject, error)
	Delete(ctx context.Context, id domain.ResourceIdentity) error
}

// SingletonBinding is the capability set for an unnamed resource kind: one
// instance per system, read and update only.
type SingletonBinding interface {
	Kind() domain.ResourceKind
	Read(ctx context.Context) (domain.RemoteObject, error)
	Update(ctx context.Context, fields map[string]any) (domain.RemoteObject, error)
}
