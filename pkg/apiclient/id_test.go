package apiclient_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trayshop/storefront/pkg/apiclient"
)

func TestID_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want apiclient.ID
	}{
		{`{"id": 42}`, "42"},
		{`{"id": "a-17"}`, "a-17"},
		{`{"id": null}`, ""},
		{`{}`, ""},
	}
	for _, tt := range tests {
		var v struct {
			ID apiclient.ID `json:"id"`
		}
		require.NoError(t, json.Unmarshal([]byte(tt.in), &v), tt.in)
		assert.Equal(t, tt.want, v.ID, tt.in)
	}

	var v struct {
		ID apiclient.ID `json:"id"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"id": true}`), &v))
}

func TestID_MarshalJSON(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal([]apiclient.ID{"42", "a-17", "007", ""})
	require.NoError(t, err)
	assert.JSONEq(t, `[42, "a-17", "007", ""]`, string(raw))
}
