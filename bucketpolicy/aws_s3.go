// Copyright 2025.
// SPDX-License-Identifier: Apache-2.0

package bucketpolicy

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/go-logr/logr"
)

// S3 API error codes classified by the adapter.
const (
	errCodeNoSuchBucket       = "NoSuchBucket"
	errCodeNoSuchBucketPolicy = "NoSuchBucketPolicy"
	errCodeNoSuchTagSet       = "NoSuchTagSet"
)

// S3BucketStore implements BucketStore against the AWS S3 API.
type S3BucketStore struct {
	client *s3.Client
}

// NewS3BucketStore creates a store over an S3 client. The client is safe for
// concurrent reuse across invocations.
func NewS3BucketStore(client *s3.Client) *S3BucketStore {
	return &S3BucketStore{client: client}
}

// GetTags returns the bucket's tag set. S3 reports NoSuchTagSet for untagged
// buckets; that maps to an empty slice here.
func (s *S3BucketStore) GetTags(ctx context.Context, bucketName string) ([]Tag, error) {
	output, err := s.client.GetBucketTagging(ctx, &s3.GetBucketTaggingInput{
		Bucket: aws.String(bucketName),
	})
	if err != nil {
		if isAPIError(err, errCodeNoSuchTagSet) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tags for bucket %s: %w", bucketName, err)
	}

	tags := make([]Tag, 0, len(output.TagSet))
	for _, tag := range output.TagSet {
		tags = append(tags, Tag{Key: aws.ToString(tag.Key), Value: aws.ToString(tag.Value)})
	}
	return tags, nil
}

// PutPolicy attaches the policy document, replacing any existing policy.
func (s *S3BucketStore) PutPolicy(ctx context.Context, bucketName, policyJSON string) error {
	_, err := s.client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(bucketName),
		Policy: aws.String(policyJSON),
	})
	if err != nil {
		return fmt.Errorf("failed to put policy on bucket %s: %w", bucketName, err)
	}
	return nil
}

// DeletePolicy removes the bucket policy. A missing policy, or a bucket that
// is already gone, means the end state holds and is treated as success.
func (s *S3BucketStore) DeletePolicy(ctx context.Context, bucketName string) error {
	_, err := s.client.DeleteBucketPolicy(ctx, &s3.DeleteBucketPolicyInput{
		Bucket: aws.String(bucketName),
	})
	if err == nil {
		return nil
	}

	if isPolicyAlreadyGone(err) {
		logr.FromContextOrDiscard(ctx).V(1).Info("Bucket policy already absent", "bucketName", bucketName)
		return nil
	}

	return fmt.Errorf("failed to delete policy on bucket %s: %w", bucketName, err)
}

// isPolicyAlreadyGone reports whether a DeleteBucketPolicy failure means the
// desired end state already holds. The bucket itself may be deleted before
// the policy resource when a stack tears down; ordering is not guaranteed.
func isPolicyAlreadyGone(err error) bool {
	return isAPIError(err, errCodeNoSuchBucketPolicy) || isAPIError(err, errCodeNoSuchBucket)
}

// isAPIError checks the smithy error code carried by an S3 API failure.
func isAPIError(err error, code string) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == code
}
