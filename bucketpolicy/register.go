// Copyright 2025.
// SPDX-License-Identifier: Apache-2.0

package bucketpolicy

import (
	"context"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/go-logr/logr"
)

// HandlerFunc is the signature lambda.Start expects for CloudFormation
// custom resources wrapped by cfn.LambdaWrap: the string is the failure
// reason reported back to the stack.
type HandlerFunc func(ctx context.Context, event cfn.Event) (string, error)

// NewHandler wires the bucket-policy operations into the CloudFormation
// custom-resource protocol. cfn.LambdaWrap decodes the event and signals the
// outcome back to the stack's pre-signed response URL, keeping that plumbing
// out of the operations themselves. Pass the returned function to
// lambda.Start.
func NewHandler(store BucketStore, log logr.Logger) HandlerFunc {
	operations := NewOperations(store)
	wrapped := cfn.LambdaWrap(operations.HandleEvent)

	return func(ctx context.Context, event cfn.Event) (string, error) {
		return wrapped(logr.NewContext(ctx, log), event)
	}
}
