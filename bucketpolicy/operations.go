// Copyright 2025.
// SPDX-License-Identifier: Apache-2.0

// operations.go implements the lifecycle verbs for bucket-policy custom
// resources: an explicit dispatch over the CloudFormation request types to
// create/update/delete actions.

package bucketpolicy

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

// Operations reconciles a bucket's access policy in response to lifecycle
// events. It holds no per-invocation state; a single value is safe to share
// across concurrent invocations.
type Operations struct {
	store BucketStore
}

// NewOperations creates the lifecycle operations over the given store.
func NewOperations(store BucketStore) *Operations {
	return &Operations{store: store}
}

// HandleEvent dispatches a CloudFormation lifecycle event to its action and
// returns the physical resource ID CloudFormation uses to track the managed
// policy. Errors propagate to the orchestrator, which treats them as failure
// of the current operation.
func (o *Operations) HandleEvent(ctx context.Context, event cfn.Event) (string, map[string]interface{}, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues(
		"requestType", string(event.RequestType),
		"logicalResourceId", event.LogicalResourceID)
	ctx = logr.NewContext(ctx, log)

	switch event.RequestType {
	case cfn.RequestCreate:
		return o.createAction(ctx, event)
	case cfn.RequestUpdate:
		return o.updateAction(ctx, event)
	case cfn.RequestDelete:
		return o.deleteAction(ctx, event)
	default:
		return event.PhysicalResourceID, nil, fmt.Errorf("unsupported request type %q", event.RequestType)
	}
}

// createAction attaches the policy and mints a new physical resource ID from
// the bucket name and the invocation's request token.
func (o *Operations) createAction(ctx context.Context, event cfn.Event) (string, map[string]interface{}, error) {
	config, err := resolveConfig(ctx, event.ResourceProperties)
	if err != nil {
		return "", nil, err
	}

	if err := o.Apply(ctx, config); err != nil {
		return "", nil, err
	}

	physicalResourceID := fmt.Sprintf("BucketPolicy_%s_%s", config.BucketName, requestToken(ctx, event))
	return physicalResourceID, nil, nil
}

// updateAction re-runs the create body with full overwrite semantics but
// echoes the existing physical resource ID, so CloudFormation does not treat
// a configuration edit as a replacement.
func (o *Operations) updateAction(ctx context.Context, event cfn.Event) (string, map[string]interface{}, error) {
	config, err := resolveConfig(ctx, event.ResourceProperties)
	if err != nil {
		return event.PhysicalResourceID, nil, err
	}

	if err := o.Apply(ctx, config); err != nil {
		return event.PhysicalResourceID, nil, err
	}

	return event.PhysicalResourceID, nil, nil
}

// deleteAction removes the bucket policy. A policy that is already gone
// counts as success so redelivered Delete events stay idempotent.
func (o *Operations) deleteAction(ctx context.Context, event cfn.Event) (string, map[string]interface{}, error) {
	config, err := resolveConfig(ctx, event.ResourceProperties)
	if err != nil {
		return event.PhysicalResourceID, nil, err
	}

	if err := o.store.DeletePolicy(ctx, config.BucketName); err != nil {
		return event.PhysicalResourceID, nil, fmt.Errorf("failed to delete bucket policy: %w", err)
	}

	logr.FromContextOrDiscard(ctx).Info("Deleted bucket policy", "bucketName", config.BucketName)
	return event.PhysicalResourceID, nil, nil
}

// Apply runs the shared create/update body: resolve the owner principal from
// the bucket tags, merge principals, build the document, attach it. Attach is
// a full overwrite, so re-running with the same inputs reproduces the same
// end state.
func (o *Operations) Apply(ctx context.Context, config *BucketPolicyConfig) error {
	log := logr.FromContextOrDiscard(ctx).WithValues("bucketName", config.BucketName)

	owner, err := resolveOwnerPrincipal(ctx, o.store, config.BucketName)
	if err != nil {
		return err
	}

	principals := combinePrincipals(owner, config.ExtraPrincipalArns)
	document := buildPolicyDocument(config.BucketName, principals, config.EncryptionRequired())

	policyJSON, err := document.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal policy document: %w", err)
	}

	if err := o.store.PutPolicy(ctx, config.BucketName, string(policyJSON)); err != nil {
		return fmt.Errorf("failed to attach bucket policy: %w", err)
	}

	log.Info("Attached bucket policy",
		"statements", len(document.Statement),
		"principals", len(principals))
	return nil
}

// requestToken returns an invocation-unique token for minting physical
// resource IDs: the Lambda request ID when available, the CloudFormation
// request ID otherwise, a fresh UUID as a last resort.
func requestToken(ctx context.Context, event cfn.Event) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	if event.RequestID != "" {
		return event.RequestID
	}
	return uuid.NewString()
}
