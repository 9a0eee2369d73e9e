// Copyright 2025.
// SPDX-License-Identifier: Apache-2.0

package bucketpolicy

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewHandler must produce the (reason, error) signature cfn.LambdaWrap
// emits, which lambda.Start accepts directly.
var _ HandlerFunc = NewHandler(newFakeBucketStore(), logr.Discard())

func TestNewHandler(t *testing.T) {
	store := ownerTaggedStore("my-bucket")
	handler := NewHandler(store, logr.Discard())

	// The wrap reports the outcome to the event's pre-signed response URL;
	// with no URL that send fails, but the operations must already have run.
	_, err := handler(context.Background(), cfn.Event{
		RequestType:        cfn.RequestCreate,
		RequestID:          "req-1234",
		ResourceProperties: map[string]interface{}{"BucketName": "my-bucket"},
	})

	require.Error(t, err)
	assert.Equal(t, 1, store.putPolicyCalls)
	assert.Contains(t, store.policies, "my-bucket")
}
