// Copyright 2025.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

func newDeleteCommand() *cobra.Command {
	var bucket string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Detach the access policy from a bucket",
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

			return store.DeletePolicy(ctx, bucket)
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "bucket name")
	_ = cmd.MarkFlagRequired("bucket")

	return cmd
}
