package domain

import "strings"

const DefaultPartition = "Common"

// ResourceIdentity uniquely addresses a named object on the managed system.
// It is immutable once resolved.
type ResourceIdentity struct {
	Name      string
	Partition string
	SubPath   string
}

// FullPath renders the identity as a slash path, e.g. /Common/my_pool or
// /Common/app1/my_pool.
func (id ResourceIdentity) FullPath() string {
	partition := id.Partition
	if partition == "" {
		partition = DefaultPartition
	}
	segments := []string{partition}
	if id.SubPath != "" {
		segments = append(segments, id.SubPath)
	}
	segments = append(segments, id.Name)
	return "/" + strings.Join(segments, "/")
}

func (id ResourceIdentity) String() string {
	return id.FullPath()
}

// StripPartition removes the leading "/<partition>/" prefix that the remote
// system prepends to names it returns.
func (id ResourceIdentity) StripPartition(name string) string {
	partition := id.Partition
	if partition == "" {
		partition = DefaultPartition
	}
	return strings.ReplaceAll(name, "/"+partition+"/", "")
}
