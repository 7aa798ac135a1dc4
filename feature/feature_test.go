package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexOf(t *testing.T) {
	ns := Names{"outlook", "temperature", "humidity"}
	assert.Equal(t, 0, ns.IndexOf("outlook"))
	assert.Equal(t, 2, ns.IndexOf("humidity"))
	assert.Equal(t, -1, ns.IndexOf("windy"))
}

func TestWithoutReturnsIndependentCopies(t *testing.T) {
	ns := Names{"a", "b", "c", "d"}
	left := ns.Without(1)
	right := ns.Without(1)
	require.Equal(t, Names{"a", "c", "d"}, left)
	require.Equal(t, left, right)

	left[0] = "changed"
	assert.Equal(t, "a", right[0])
	assert.Equal(t, Names{"a", "b", "c", "d"}, ns)

	assert.Equal(t, ns, ns.Without(7))
}

func TestNamesValidate(t *testing.T) {
	assert.NoError(t, Names{"a", "b"}.Validate())
	assert.NoError(t, Names{}.Validate())
	assert.Error(t, Names{"a", ""}.Validate())
	assert.Error(t, Names{"a", "b", "a"}.Validate())
}

func TestMetadataValidate(t *testing.T) {
	tests := []struct {
		name    string
		md      Metadata
		wantErr bool
	}{
		{"valid", Metadata{Names{"no-surfacing", "flippers"}, "fish"}, false},
		{"no features", Metadata{Names{}, "fish"}, true},
		{"no label", Metadata{Names{"flippers"}, ""}, true},
		{"label among features", Metadata{Names{"flippers", "fish"}, "fish"}, true},
		{"repeated feature", Metadata{Names{"flippers", "flippers"}, "fish"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.md.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMetadataColumns(t *testing.T) {
	md := &Metadata{Names{"a", "b"}, "c"}
	assert.Equal(t, []string{"a", "b", "c"}, md.Columns())
	assert.Equal(t, Names{"a", "b"}, md.Features)
}
