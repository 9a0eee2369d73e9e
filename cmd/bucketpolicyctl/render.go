// Copyright 2025.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rinswind/cfn-resource-handlers/bucketpolicy"
)

func newRenderCommand() *cobra.Command {
	var bucket, owner string
	var extras []string
	var requireEncryption bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the policy document for a bucket without touching AWS",
		Long: "Render builds the policy document locally. The owner principal is given " +
			"explicitly instead of being resolved from the bucket's provisioning principal tag.",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := bucketpolicy.RenderPolicy(bucket, owner, extras, requireEncryption)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "bucket name")
	cmd.Flags().StringVar(&owner, "owner", "", "owner principal ARN (stands in for the provisioning principal tag)")
	cmd.Flags().StringArrayVar(&extras, "extra-principal", nil, "extra principal ARN (repeatable)")
	cmd.Flags().BoolVar(&requireEncryption, "require-encryption", false, "emit the encryption deny statements")
	_ = cmd.MarkFlagRequired("bucket")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}
