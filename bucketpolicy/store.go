// Copyright 2025.
// SPDX-License-Identifier: Apache-2.0

package bucketpolicy

import "context"

// Tag is a bucket tag key/value pair.
type Tag struct {
	Key   string
	Value string
}

// BucketStore is the storage-service surface the provider needs: tag lookup
// and policy attach/detach. Implementations must be safe for concurrent use;
// each call addresses a single bucket.
type BucketStore interface {
	// GetTags returns the bucket's tag set. An untagged bucket yields an
	// empty slice, not an error.
	GetTags(ctx context.Context, bucketName string) ([]Tag, error)

	// PutPolicy attaches policyJSON as the bucket policy, replacing any
	// existing policy.
	PutPolicy(ctx context.Context, bucketName, policyJSON string) error

	// DeletePolicy removes the bucket policy. Deleting an already-absent
	// policy must succeed.
	DeletePolicy(ctx context.Context, bucketName string) error
}
