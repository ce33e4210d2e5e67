package config

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValue(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		key     string
		value   string
		want    interface{}
		wantErr bool
	}{
		"bool true":         {key: "sound.enabled", value: "true", want: true},
		"bool mixed case":   {key: "enabled", value: "False", want: false},
		"duration":          {key: "feishu.timeout", value: "2s", want: "2s"},
		"duration compound": {key: "grace_period", value: "1m30s", want: "1m30s"},
		"enum":              {key: "log_level", value: "debug", want: "debug"},
		"string":            {key: "sound.voice", value: "Meijia", want: "Meijia"},
		"bad enum":          {key: "log_level", value: "trace", wantErr: true},
		"unknown":           {key: "nope", value: "1", wantErr: true},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ValidateValue(tc.key, tc.value)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Parsed)
			assert.Equal(t, tc.value, got.Raw)
		})
	}
}

func TestGetKeySchema_Unknown(t *testing.T) {
	t.Parallel()

	_, err := GetKeySchema("feishu.colour")
	var unknown ErrUnknownKey
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "feishu.colour", unknown.Key)
}

func TestSortedKeys(t *testing.T) {
	t.Parallel()

	keys := SortedKeys()
	assert.Len(t, keys, len(KnownKeys))
	assert.True(t, sort.StringsAreSorted(keys))
}

func TestConfigValueType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bool", TypeBool.String())
	assert.Equal(t, "duration", TypeDuration.String())
	assert.Equal(t, "enum", TypeEnum.String())
	assert.Equal(t, "unknown", ConfigValueType(99).String())
}
