//go:build e2e
// +build e2e

// Copyright 2025.
// SPDX-License-Identifier: Apache-2.0

package e2e

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rinswind/cfn-resource-handlers/bucketpolicy"
)

// memoryBucketStore fakes the S3 tag and policy surface for lifecycle runs.
type memoryBucketStore struct {
	tags     map[string][]bucketpolicy.Tag
	policies map[string]string
}

func newMemoryBucketStore() *memoryBucketStore {
	return &memoryBucketStore{
		tags:     make(map[string][]bucketpolicy.Tag),
		policies: make(map[string]string),
	}
}

func (m *memoryBucketStore) GetTags(ctx context.Context, bucketName string) ([]bucketpolicy.Tag, error) {
	return m.tags[bucketName], nil
}

func (m *memoryBucketStore) PutPolicy(ctx context.Context, bucketName, policyJSON string) error {
	m.policies[bucketName] = policyJSON
	return nil
}

func (m *memoryBucketStore) DeletePolicy(ctx context.Context, bucketName string) error {
	delete(m.policies, bucketName)
	return nil
}

var _ = Describe("BucketPolicy lifecycle", func() {
	const bucketName = "provisioned-bucket"
	const ownerArn = "arn:aws:iam::111:role/Owner"
	const extraArn = "arn:aws:iam::222:role/Extra"

	var (
		ctx        context.Context
		store      *memoryBucketStore
		operations *bucketpolicy.Operations
	)

	BeforeEach(func() {
		ctx = logr.NewContext(context.Background(), testLog)
		store = newMemoryBucketStore()
		store.tags[bucketName] = []bucketpolicy.Tag{
			{Key: bucketpolicy.ProvisioningPrincipalTagKey, Value: ownerArn},
		}
		operations = bucketpolicy.NewOperations(store)
	})

	createEvent := func(requireEncryption string) cfn.Event {
		properties := map[string]interface{}{
			"BucketName":         bucketName,
			"ExtraPrincipalArns": []interface{}{extraArn},
		}
		if requireEncryption != "" {
			properties["RequireEncryption"] = requireEncryption
		}
		return cfn.Event{
			RequestType:        cfn.RequestCreate,
			RequestID:          "create-req",
			ResourceProperties: properties,
		}
	}

	It("runs create, update, delete end to end", func() {
		By("creating the policy")
		physicalID, _, err := operations.HandleEvent(ctx, createEvent(""))
		Expect(err).NotTo(HaveOccurred())
		Expect(physicalID).To(HavePrefix("BucketPolicy_" + bucketName + "_"))
		Expect(store.policies).To(HaveKey(bucketName))

		var document bucketpolicy.PolicyDocument
		Expect(json.Unmarshal([]byte(store.policies[bucketName]), &document)).To(Succeed())
		Expect(document.Statement).To(HaveLen(2))
		Expect(document.Statement[0].Principal.AWS).To(Equal([]string{extraArn, ownerArn}))

		By("updating with encryption enforcement")
		updateEvent := createEvent("true")
		updateEvent.RequestType = cfn.RequestUpdate
		updateEvent.PhysicalResourceID = physicalID

		updatedID, _, err := operations.HandleEvent(ctx, updateEvent)
		Expect(err).NotTo(HaveOccurred())
		Expect(updatedID).To(Equal(physicalID), "update must not replace the resource")

		Expect(json.Unmarshal([]byte(store.policies[bucketName]), &document)).To(Succeed())
		Expect(document.Statement).To(HaveLen(4))

		By("deleting the policy")
		deleteEvent := cfn.Event{
			RequestType:        cfn.RequestDelete,
			PhysicalResourceID: physicalID,
			ResourceProperties: map[string]interface{}{"BucketName": bucketName},
		}

		deletedID, _, err := operations.HandleEvent(ctx, deleteEvent)
		Expect(err).NotTo(HaveOccurred())
		Expect(deletedID).To(Equal(physicalID))
		Expect(store.policies).NotTo(HaveKey(bucketName))

		By("redelivering the delete")
		_, _, err = operations.HandleEvent(ctx, deleteEvent)
		Expect(err).NotTo(HaveOccurred(), "delete of an absent policy is idempotent")
	})

	It("redelivered creates converge on the same policy", func() {
		event := createEvent("true")

		first, _, err := operations.HandleEvent(ctx, event)
		Expect(err).NotTo(HaveOccurred())
		firstPolicy := store.policies[bucketName]

		second, _, err := operations.HandleEvent(ctx, event)
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
		Expect(store.policies[bucketName]).To(Equal(firstPolicy))
	})

	It("fails create when the bucket has no provisioning principal tag", func() {
		store.tags[bucketName] = []bucketpolicy.Tag{{Key: "environment", Value: "production"}}

		_, _, err := operations.HandleEvent(ctx, createEvent(""))
		Expect(err).To(MatchError(bucketpolicy.ErrNoPrincipalTag))
		Expect(store.policies).NotTo(HaveKey(bucketName))
	})

	It("fails create for an untagged bucket", func() {
		delete(store.tags, bucketName)

		_, _, err := operations.HandleEvent(ctx, createEvent(""))
		Expect(err).To(MatchError(bucketpolicy.ErrNoTags))
	})
})
