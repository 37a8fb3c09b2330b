package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_IsAllowed(t *testing.T) {
	testCases := []struct {
		description string
		policy      *Policy
		service     string
		expect      bool
	}{
		{
			description: "nil policy admits everything",
			policy:      nil,
			service:     "github",
			expect:      true,
		},
		{
			description: "deny mode blocks everything",
			policy:      &Policy{Mode: ModeDeny},
			service:     "github",
			expect:      false,
		},
		{
			description: "blocklist match",
			policy:      &Policy{BlockList: []string{"github"}},
			service:     "github",
			expect:      false,
		},
		{
			description: "blocklist is case insensitive",
			policy:      &Policy{BlockList: []string{"GitHub"}},
			service:     "github",
			expect:      false,
		},
		{
			description: "blocklist wins over allowlist",
			policy:      &Policy{AllowList: []string{"github"}, BlockList: []string{"github"}},
			service:     "github",
			expect:      false,
		},
		{
			description: "empty allowlist admits everything",
			policy:      &Policy{},
			service:     "filesystem",
			expect:      true,
		},
		{
			description: "allowlist match",
			policy:      &Policy{AllowList: []string{"filesystem"}},
			service:     "filesystem",
			expect:      true,
		},
		{
			description: "allowlist miss",
			policy:      &Policy{AllowList: []string{"filesystem"}},
			service:     "github",
			expect:      false,
		},
	}

	for _, testCase := range testCases {
		actual := testCase.policy.IsAllowed(testCase.service)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestPolicy_Context(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	assert.Nil(t, FromContext(nil))

	policy := &Policy{Mode: ModeDeny}
	ctx := WithPolicy(context.Background(), policy)
	assert.Same(t, policy, FromContext(ctx))
}

func TestPolicy_ConfigRoundTrip(t *testing.T) {
	assert.Nil(t, ToConfig(nil))
	assert.Nil(t, FromConfig(nil))

	policy := &Policy{Mode: ModeAuto, AllowList: []string{"filesystem"}, BlockList: []string{"github"}}
	restored := FromConfig(ToConfig(policy))
	assert.Equal(t, policy, restored)
}
