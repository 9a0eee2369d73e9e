// Copyright 2025.
// SPDX-License-Identifier: Apache-2.0

// policy.go contains the bucket policy document model and the builder that
// turns a bucket name and principal list into a canonical policy document.

package bucketpolicy

import "encoding/json"

// PolicyVersion is the policy language version accepted by S3.
const PolicyVersion = "2012-10-17"

// Effect determines whether a statement allows or denies access
type Effect string

const (
	EffectAllow Effect = "Allow"
	EffectDeny  Effect = "Deny"
)

// Statement identifiers for the generated policy.
const (
	SidReadAccess                    = "ReadAccess"
	SidWriteAccess                   = "WriteAccess"
	SidDenyIncorrectEncryptionHeader = "DenyIncorrectEncryptionHeader"
	SidDenyUnencryptedUploads        = "DenyUnEncryptedObjectUploads"
)

// S3 action patterns used by the generated statements.
const (
	actionListBucketAll      = "s3:ListBucket*"
	actionGetBucketLocation  = "s3:GetBucketLocation"
	actionObjectAll          = "s3:*Object*"
	actionMultipartUploadAll = "s3:*MultipartUpload*"
	actionPutObject          = "s3:PutObject"
)

// Server-side encryption condition vocabulary.
const (
	sseConditionKey    = "s3:x-amz-server-side-encryption"
	sseAlgorithmAES256 = "AES256"
)

const bucketARNPrefix = "arn:aws:s3:::"

// Principal identifies who a statement applies to.
type Principal struct {
	AWS []string `json:"AWS"`
}

// Condition holds operator -> condition key -> value predicates.
type Condition map[string]map[string]string

// Statement is a single permission statement in a bucket policy.
type Statement struct {
	Sid       string    `json:"Sid"`
	Effect    Effect    `json:"Effect"`
	Principal Principal `json:"Principal"`
	Action    []string  `json:"Action"`
	Resource  string    `json:"Resource"`
	Condition Condition `json:"Condition,omitempty"`
}

// PolicyDocument is an S3 bucket policy document.
type PolicyDocument struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Marshal returns the canonical JSON form of the document. Field order is
// fixed by the struct layout and map keys marshal sorted, so identical inputs
// yield byte-identical output.
func (p PolicyDocument) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// buildPolicyDocument constructs the access policy for a bucket. ReadAccess
// and WriteAccess grant the principals list/read and object/multipart access;
// when requireEncryption is set, two deny statements reject uploads that are
// missing or mismatching the server-side encryption header.
//
// Pure function: no I/O, deterministic for identical inputs.
func buildPolicyDocument(bucketName string, principals []string, requireEncryption bool) PolicyDocument {
	bucketARN := bucketARNPrefix + bucketName
	objectARN := bucketARN + "/*"

	principal := Principal{AWS: principals}

	statements := []Statement{
		{
			Sid:       SidReadAccess,
			Effect:    EffectAllow,
			Principal: principal,
			Action:    []string{actionListBucketAll, actionGetBucketLocation},
			Resource:  bucketARN,
		},
		{
			Sid:       SidWriteAccess,
			Effect:    EffectAllow,
			Principal: principal,
			Action:    []string{actionObjectAll, actionMultipartUploadAll},
			Resource:  objectARN,
		},
	}

	if requireEncryption {
		statements = append(statements,
			Statement{
				Sid:       SidDenyIncorrectEncryptionHeader,
				Effect:    EffectDeny,
				Principal: principal,
				Action:    []string{actionPutObject},
				Resource:  objectARN,
				Condition: Condition{
					"StringNotEquals": {sseConditionKey: sseAlgorithmAES256},
				},
			},
			Statement{
				Sid:       SidDenyUnencryptedUploads,
				Effect:    EffectDeny,
				Principal: principal,
				Action:    []string{actionPutObject},
				Resource:  objectARN,
				Condition: Condition{
					"Null": {sseConditionKey: "true"},
				},
			})
	}

	return PolicyDocument{
		Version:   PolicyVersion,
		Statement: statements,
	}
}

// RenderPolicy returns the canonical policy JSON for the given bucket and
// principals without consulting bucket tags. Used by the out-of-band CLI.
func RenderPolicy(bucketName, owner string, extras []string, requireEncryption bool) ([]byte, error) {
	document := buildPolicyDocument(bucketName, combinePrincipals(owner, extras), requireEncryption)
	return document.Marshal()
}
