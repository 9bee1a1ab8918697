package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountSet(t *testing.T) {
	assert.Equal(t, 0, CountSet())
	assert.Equal(t, 0, CountSet(false, false))
	assert.Equal(t, 2, CountSet(true, false, true))
}

func TestValidateSingleInputSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []bool
		wantErr string
	}{
		{name: "exactly one", sources: []bool{false, true, false}, wantErr: ""},
		{name: "none", sources: []bool{false, false}, wantErr: "no input"},
		{name: "multiple", sources: []bool{true, true}, wantErr: "multiple inputs"},
		{name: "empty list", sources: nil, wantErr: "no input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSingleInputSource("no input", "multiple inputs", tt.sources...)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
