package schema_test

import (
	"encoding/json"

	"basegraph.app/hubsync/internal/model"
	"basegraph.app/hubsync/internal/schema"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Validator", func() {
	var v *schema.Validator

	BeforeEach(func() {
		var err error
		v, err = schema.New()
		Expect(err).NotTo(HaveOccurred())
	})

	It("decodes a valid envelope", func() {
		env, err := v.DecodeEnvelope([]byte(`{
			"action": "update",
			"type": "Issue",
			"data": {"id": "iss_1", "title": "Fix login"},
			"organizationId": "org_1",
			"webhookTimestamp": 1700000000000
		}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(env.Action).To(Equal("update"))
		Expect(env.Type).To(Equal("Issue"))
		Expect(env.Data).To(HaveKeyWithValue("id", "iss_1"))
	})

	It("accepts unknown entity types", func() {
		_, err := v.DecodeEnvelope([]byte(`{"action":"create","type":"Cycle","data":{"id":"c_1"}}`))
		Expect(err).NotTo(HaveOccurred())
	})

	DescribeTable("rejects malformed envelopes",
		func(body string) {
			_, err := v.DecodeEnvelope([]byte(body))
			Expect(err).To(MatchError(schema.ErrInvalidEnvelope))
		},
		Entry("not json", `{"action":`),
		Entry("missing data", `{"action":"create","type":"Issue"}`),
		Entry("data not an object", `{"action":"create","type":"Issue","data":[1]}`),
		Entry("unknown action", `{"action":"archive","type":"Issue","data":{}}`),
		Entry("empty type", `{"action":"create","type":"","data":{}}`),
	)

	It("publishes canonical shapes for every entity type", func() {
		for _, entityType := range model.EntityTypes {
			doc, ok := v.CanonicalSchema(entityType)
			Expect(ok).To(BeTrue(), string(entityType))

			var parsed map[string]any
			Expect(json.Unmarshal(doc, &parsed)).To(Succeed())
			Expect(parsed).To(HaveKey("properties"))
		}

		_, ok := v.CanonicalSchema(model.EntityType("Cycle"))
		Expect(ok).To(BeFalse())
	})
})
