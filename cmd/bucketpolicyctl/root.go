// Copyright 2025.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rinswind/cfn-resource-handlers/bucketpolicy"
)

// Flags can also be set through BUCKETPOLICY_* environment variables
// (BUCKETPOLICY_REGION, BUCKETPOLICY_VERBOSE).
const envPrefix = "BUCKETPOLICY"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "bucketpolicyctl",
		Short:        "Manage provisioned-bucket access policies out-of-band",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("region", "", "AWS region (defaults to the SDK resolution chain)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	_ = viper.BindPFlag("region", cmd.PersistentFlags().Lookup("region"))
	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	cmd.AddCommand(newRenderCommand(), newApplyCommand(), newDeleteCommand())
	return cmd
}

func newLogger() (logr.Logger, error) {
	var zapLog *zap.Logger
	var err error
	if viper.GetBool("verbose") {
		zapLog, err = zap.NewDevelopment()
	} else {
		zapLog, err = zap.NewProduction()
	}
	if err != nil {
		return logr.Logger{}, err
	}
	return zapr.NewLogger(zapLog), nil
}

func newStore(ctx context.Context) (*bucketpolicy.S3BucketStore, error) {
	var options []func(*awsconfig.LoadOptions) error
	if region := viper.GetString("region"); region != "" {
		options = append(options, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, err
	}
	return bucketpolicy.NewS3BucketStore(s3.NewFromConfig(awsCfg)), nil
}
