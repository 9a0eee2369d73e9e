// Copyright 2025.
// SPDX-License-Identifier: Apache-2.0

// principals.go derives the bucket's owning principal from its tag set and
// merges it with any caller-supplied extra principals.

package bucketpolicy

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
)

// ProvisioningPrincipalTagKey is the well-known Service Catalog tag naming
// the principal that provisioned the bucket.
const ProvisioningPrincipalTagKey = "aws:servicecatalog:provisioningPrincipalArn"

var (
	// ErrNoTags signals that the bucket carries no tags at all, so no owner
	// principal can be derived.
	ErrNoTags = errors.New("no tags returned for bucket")

	// ErrNoPrincipalTag signals that the bucket is tagged but none of the
	// tags carry the provisioning principal key.
	ErrNoPrincipalTag = errors.New("could not derive a provisioning principal from tags")
)

// resolveOwnerPrincipal looks up the bucket's tag set and returns the value
// of the provisioning principal tag. There is no fallback principal: a bucket
// without the tag fails the operation so the operator can fix the tagging.
func resolveOwnerPrincipal(ctx context.Context, store BucketStore, bucketName string) (string, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("bucketName", bucketName)

	tags, err := store.GetTags(ctx, bucketName)
	if err != nil {
		return "", fmt.Errorf("failed to get bucket tags: %w", err)
	}
	if len(tags) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoTags, bucketName)
	}

	owner, err := findPrincipalTag(tags)
	if err != nil {
		return "", err
	}

	log.V(1).Info("Resolved provisioning principal", "principal", owner)
	return owner, nil
}

// findPrincipalTag scans the tag set for the provisioning principal key.
// First match wins if the key somehow appears twice.
func findPrincipalTag(tags []Tag) (string, error) {
	for _, tag := range tags {
		if tag.Key == ProvisioningPrincipalTagKey {
			return tag.Value, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoPrincipalTag, ProvisioningPrincipalTagKey)
}

// combinePrincipals returns extras followed by the owner principal. Order is
// preserved and duplicates are kept; the policy engine treats the principal
// array as a set.
func combinePrincipals(owner string, extras []string) []string {
	principals := make([]string, 0, len(extras)+1)
	principals = append(principals, extras...)
	return append(principals, owner)
}
