// Copyright 2025.
// SPDX-License-Identifier: Apache-2.0

// bucketpolicy-handler is the Lambda entrypoint for the bucket-policy
// CloudFormation custom resource.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"

	"github.com/rinswind/cfn-resource-handlers/bucketpolicy"
)

func main() {
	zapLog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()
	logger := zapr.NewLogger(zapLog)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		zapLog.Fatal("failed to load AWS config", zap.Error(err))
	}

	store := bucketpolicy.NewS3BucketStore(s3.NewFromConfig(awsCfg))
	lambda.Start(bucketpolicy.NewHandler(store, logger))
}
