// Copyright 2025.
// SPDX-License-Identifier: Apache-2.0

// bucketpolicyctl manages provisioned-bucket access policies out-of-band,
// using the same core the CloudFormation custom resource runs. Useful for
// inspecting the generated document and for repairing buckets whose stack is
// wedged.
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
