package docsite_test

import (
	"testing"

	"github.com/fwojciec/docsite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts known roles", func(t *testing.T) {
		t.Parallel()

		for _, role := range []docsite.Role{docsite.RoleSystem, docsite.RoleUser, docsite.RoleAssistant, docsite.RoleData} {
			m := docsite.Message{Role: role, Content: "hi"}
			assert.NoError(t, m.Validate(), "role %q", role)
		}
	})

	t.Run("rejects missing role", func(t *testing.T) {
		t.Parallel()

		m := docsite.Message{Content: "hi"}
		err := m.Validate()

		require.Error(t, err)
		assert.Equal(t, docsite.EINVALID, docsite.ErrorCode(err))
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		t.Parallel()

		m := docsite.Message{Role: "robot"}
		err := m.Validate()

		require.Error(t, err)
		assert.Contains(t, docsite.ErrorMessage(err), "robot")
	})
}

func TestTranscript_Validate(t *testing.T) {
	t.Parallel()

	err := (&docsite.Transcript{Answer: "42"}).Validate()

	require.Error(t, err)
	assert.Equal(t, docsite.EINVALID, docsite.ErrorCode(err))
}

func TestLastUserMessage(t *testing.T) {
	t.Parallel()

	messages := []docsite.Message{
		{Role: docsite.RoleUser, Content: "first"},
		{Role: docsite.RoleAssistant, Content: "answer"},
		{Role: docsite.RoleUser, Content: "second"},
		{Role: docsite.RoleAssistant, Content: "another answer"},
	}

	assert.Equal(t, "second", docsite.LastUserMessage(messages))
	assert.Empty(t, docsite.LastUserMessage(nil))
}
