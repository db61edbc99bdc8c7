package qset_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumsat/fbasqi/qset"
)

func TestDecodeJSON_Singleton(t *testing.T) {
	body := `[
		{"validator": "v1", "quorum_set": {"threshold": 1, "validators": ["v1"], "inner_quorum_sets": []}}
	]`

	m, err := qset.DecodeJSON(strings.NewReader(body))
	require.NoError(t, err)
	require.Contains(t, m, qset.ValidatorID("v1"))

	qs := m["v1"]
	assert.Equal(t, 1, qs.Threshold)
	assert.Equal(t, []qset.ValidatorID{"v1"}, qs.Validators)
	assert.Empty(t, qs.InnerSets)
}

func TestDecodeJSON_Nested(t *testing.T) {
	body := `[
		{"validator": "v1", "quorum_set": {
			"threshold": 1,
			"validators": [],
			"inner_quorum_sets": [
				{"threshold": 2, "validators": ["v1", "v2", "v3"], "inner_quorum_sets": []}
			]
		}}
	]`

	m, err := qset.DecodeJSON(strings.NewReader(body))
	require.NoError(t, err)

	qs := m["v1"]
	require.Len(t, qs.InnerSets, 1)
	assert.Equal(t, 2, qs.InnerSets[0].Threshold)
	assert.Equal(t, []qset.ValidatorID{"v1", "v2", "v3"}, qs.InnerSets[0].Validators)
}

func TestDecodeJSON_Malformed(t *testing.T) {
	_, err := qset.DecodeJSON(strings.NewReader(`{not valid json`))
	assert.ErrorIs(t, err, qset.ErrMalformedJSON)
}

func TestDecodeJSON_UnknownField(t *testing.T) {
	body := `[{"validator": "v1", "quorum_set": {"threshold": 1, "validators": [], "inner_quorum_sets": [], "bogus": true}}]`
	_, err := qset.DecodeJSON(strings.NewReader(body))
	assert.ErrorIs(t, err, qset.ErrMalformedJSON)
}
