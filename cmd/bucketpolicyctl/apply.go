// Copyright 2025.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/rinswind/cfn-resource-handlers/bucketpolicy"
)

func newApplyCommand() *cobra.Command {
	var bucket string
	var extras []string
	var requireEncryption bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Resolve the owner from the bucket tags and attach the policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			ctx := logr.NewContext(cmd.Context(), log)

			store, err := newStore(ctx)
			if err != nil {
				return err
			}

			config := &bucketpolicy.BucketPolicyConfig{
				BucketName:         bucket,
				ExtraPrincipalArns: extras,
			}
			if requireEncryption {
				config.RequireEncryption = "true"
			}

			return bucketpolicy.NewOperations(store).Apply(ctx, config)
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "bucket name")
	cmd.Flags().StringArrayVar(&extras, "extra-principal", nil, "extra principal ARN (repeatable)")
	cmd.Flags().BoolVar(&requireEncryption, "require-encryption", false, "emit the encryption deny statements")
	_ = cmd.MarkFlagRequired("bucket")

	return cmd
}
