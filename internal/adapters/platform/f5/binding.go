package f5

import (
	"context"
	"fmt"
	"strings"

	"github.com/erjac77/f5-reconciler/internal/core/domain"
	"github.com/erjac77/f5-reconciler/internal/core/ports"
	"github.com/erjac77/f5-reconciler/internal/errors"
)

const tmBasePath = "/mgmt/tm"

// restBinding maps a named resource kind onto its iControl REST collection.
// The kind doubles as the URL segment ("ltm/pool" lives under
// /mgmt/tm/ltm/pool).
type restBinding struct {
	client *Client
	kind   domain.ResourceKind
	base   string
}

func NewBinding(client *Client, kind domain.ResourceKind) (ports.ResourceBinding, error) {
	if client == nil {
		return nil, errors.New(errors.CodeInternal, "client cannot be nil")
	}
	if kind == "" {
		return nil, errors.New(errors.CodeConfigValidation, "resource kind cannot be empty")
	}
	return &restBinding{
		client: client,
		kind:   kind,
		base:   fmt.Sprintf("%s/%s", tmBasePath, kind),
	}, nil
}

func (b *restBinding) Kind() domain.ResourceKind {
	return b.kind
}

func (b *restBinding) Exists(ctx context.Context, id domain.ResourceIdentity) (bool, error) {
	_, err := b.client.Get(ctx, b.itemPath(id))
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (b *restBinding) Read(ctx context.Context, id domain.ResourceIdentity) (domain.RemoteObject, error) {
	return b.client.Get(ctx, b.itemPath(id))
}

func (b *restBinding) Create(ctx context.Context, id domain.ResourceIdentity, fields map[string]any) (domain.RemoteObject, error) {
	payload := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		payload[k] = v
	}
	payload["name"] = id.Name
	payload["partition"] = id.Partition
	if id.SubPath != "" {
		payload["subPath"] = id.SubPath
	}
	return b.client.Post(ctx, b.base, payload)
}

func (b *restBinding) Update(ctx context.Context, id domain.ResourceIdentity, fields map[string]any) (domain.RemoteObject, error) {
	return b.client.Patch(ctx, b.itemPath(id), fields)
}

func (b *restBinding) Delete(ctx context.Context, id domain.ResourceIdentity) error {
	return b.client.Delete(ctx, b.itemPath(id))
}

// itemPath encodes the identity the way iControl REST addresses folder
// contents: slashes in the full path become tildes.
func (b *restBinding) itemPath(id domain.ResourceIdentity) string {
	var sb strings.Builder
	sb.WriteString("~")
	sb.WriteString(id.Partition)
	if id.SubPath != "" {
		sb.WriteString("~")
		sb.WriteString(id.SubPath)
	}
	sb.WriteString("~")
	sb.WriteString(id.Name)
	return b.base + "/" + sb.String()
}
