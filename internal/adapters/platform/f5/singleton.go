package f5

import (
	"context"
	"fmt"

	"github.com/erjac77/f5-reconciler/internal/core/domain"
	"github.com/erjac77/f5-reconciler/internal/core/ports"
	"github.com/erjac77/f5-reconciler/internal/errors"
)

// singletonBinding maps an unnamed device-wide resource (sys/dns, sys/ntp,
// sys/global-settings) onto its fixed endpoint. Singletons always exist, so
// only read and update are exposed.
type singletonBinding struct {
	client *Client
	kind   domain.ResourceKind
	path   string
}

func NewSingletonBinding(client *Client, kind domain.ResourceKind) (ports.SingletonBinding, error) {
	if client == nil {
		return nil, errors.New(errors.CodeInternal, "client cannot be nil")
	}
	if kind == "" {
		return nil, errors.New(errors.CodeConfigValidation, "resource kind cannot be empty")
	}
	return &singletonBinding{
		client: client,
		kind:   kind,
		path:   fmt.Sprintf("%s/%s", tmBasePath, kind),
	}, nil
}

func (b *singletonBinding) Kind() domain.ResourceKind {
	return b.kind
}

func (b *singletonBinding) Read(ctx context.Context) (domain.RemoteObject, error) {
	return b.client.Get(ctx, b.path)
}

func (b *singletonBinding) Update(ctx context.Context, fields map[string]any) (domain.RemoteObject, error) {
	return b.client.Patch(ctx, b.path, fields)
}
