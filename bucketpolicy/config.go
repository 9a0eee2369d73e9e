// Copyright 2025.
// SPDX-License-Identifier: Apache-2.0

// config.go contains bucket-policy parameter parsing and validation logic.
// The ResourceProperties map from the CloudFormation event is decoded into a
// typed BucketPolicyConfig before any AWS call is made.

package bucketpolicy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-playground/validator/v10"
)

// ErrMissingBucketName signals that the required BucketName property was
// absent or empty. Non-retryable; the template has to be fixed.
var ErrMissingBucketName = errors.New("required parameter BucketName is missing")

// bucketPolicyValidator is a package-level validator instance that is reused across
// all invocations. validator.Validate is thread-safe and designed for concurrent use.
var bucketPolicyValidator = validator.New()

// StringOrStringList accepts either a single JSON string or an array of
// strings. CloudFormation templates pass ExtraPrincipalArns in both forms.
type StringOrStringList []string

func (s *StringOrStringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringOrStringList{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected a string or a list of strings: %w", err)
	}
	*s = list
	return nil
}

// LooseString coerces free-form JSON scalars (string, bool, number) to their
// string form, matching how template parameters stringify on the way in.
type LooseString string

func (l *LooseString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*l = LooseString(str)
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = LooseString(fmt.Sprint(raw))
	return nil
}

// BucketPolicyConfig represents the resource properties for bucket-policy
// custom resources, decoded from the CloudFormation event.
type BucketPolicyConfig struct {
	// BucketName is the bucket whose access policy is managed
	BucketName string `json:"BucketName" validate:"required"`

	// ExtraPrincipalArns are additional principals granted access besides the
	// provisioning principal resolved from the bucket tags
	ExtraPrincipalArns StringOrStringList `json:"ExtraPrincipalArns,omitempty"`

	// RequireEncryption enables the deny statements that reject unencrypted
	// uploads. Only the exact case-insensitive value "true" enables them.
	RequireEncryption LooseString `json:"RequireEncryption,omitempty"`
}

// EncryptionRequired reports whether the encryption deny statements should be
// emitted for this configuration.
func (c *BucketPolicyConfig) EncryptionRequired() bool {
	return parseRequireEncryption(string(c.RequireEncryption))
}

// parseRequireEncryption implements the truthy rule for the RequireEncryption
// property: only the literal value "true", compared case-insensitively, counts.
// Anything else ("1", "yes", padded whitespace, absent) is false.
func parseRequireEncryption(raw string) bool {
	return strings.EqualFold(raw, "true")
}

// resolveConfig decodes and validates the event's ResourceProperties into a
// BucketPolicyConfig.
func resolveConfig(ctx context.Context, properties map[string]interface{}) (*BucketPolicyConfig, error) {
	log := logr.FromContextOrDiscard(ctx)

	raw, err := json.Marshal(properties)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resource properties: %w", err)
	}

	var config BucketPolicyConfig
	if err := json.Unmarshal(raw, &config); err != nil {
		return nil, fmt.Errorf("failed to parse bucket-policy properties: %w", err)
	}

	// BucketName is the only required property
	if err := bucketPolicyValidator.Struct(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingBucketName, err)
	}

	// Drop blank principal entries; templates commonly splice empty parameters
	config.ExtraPrincipalArns = filterBlank(config.ExtraPrincipalArns)

	log.V(1).Info("Resolved bucket-policy config",
		"bucketName", config.BucketName,
		"extraPrincipals", len(config.ExtraPrincipalArns),
		"requireEncryption", config.EncryptionRequired())

	return &config, nil
}

func filterBlank(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			result = append(result, v)
		}
	}
	return result
}
