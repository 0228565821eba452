package identity

import (
	"strings"

	"github.com/erjac77/f5-reconciler/internal/core/domain"
	"github.com/erjac77/f5-reconciler/internal/errors"
)

// Resolve derives a ResourceIdentity from flat caller parameters. The name
// parameter is mandatory; partition defaults to Common.
func Resolve(params map[string]any) (domain.ResourceIdentity, error) {
	name := stringParam(params, domain.KeyName)
	if name == "" {
		return domain.ResourceIdentity{}, errors.New(errors.CodeInvalidIdentity, "resource name is required")
	}

	id := domain.ResourceIdentity{
		Partition: domain.DefaultPartition,
	}
	if partition := stringParam(params, domain.KeyPartition); partition != "" {
		id.Partition = partition
	}
	id.SubPath = stringParam(params, domain.KeySubPath)

	// Callers sometimes hand over the remote full-path form of the name.
	id.Name = id.StripPartition(name)
	if strings.Contains(id.Name, "/") {
		return domain.ResourceIdentity{}, errors.Newf(errors.CodeInvalidIdentity,
			"resource name %q must not contain '/' outside its own partition prefix", name)
	}

	return id, nil
}

// ResolveFromPath derives a ResourceIdentity from a slash-delimited composite
// path of one to three segments:
//
//	name                    -> ambient partition
//	partition/name
//	partition/subPath/name
//
// Any other segment count is an invalid identity.
func ResolveFromPath(path string, ambientPartition string) (domain.ResourceIdentity, error) {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return domain.ResourceIdentity{}, errors.New(errors.CodeInvalidIdentity, "resource path is empty")
	}

	segments := strings.Split(trimmed, "/")
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			return domain.ResourceIdentity{}, errors.Newf(errors.CodeInvalidIdentity, "resource path %q contains an empty segment", path)
		}
	}

	if ambientPartition == "" {
		ambientPartition = domain.DefaultPartition
	}

	switch len(segments) {
	case 1:
		return domain.ResourceIdentity{
			Name:      segments[0],
			Partition: ambientPartition,
		}, nil
	case 2:
		return domain.ResourceIdentity{
			Partition: segments[0],
			Name:      segments[1],
		}, nil
	case 3:
		return domain.ResourceIdentity{
			Partition: segments[0],
			SubPath:   segments[1],
			Name:      segments[2],
		}, nil
	default:
		return domain.ResourceIdentity{}, errors.Newf(errors.CodeInvalidIdentity, "resource path %q must have 1 to 3 segments, got %d", path, len(segments))
	}
}

func stringParam(params map[string]any, key string) string {
	v, found := params[key]
	if !found || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
