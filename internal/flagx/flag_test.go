package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-a", "http://localhost:8000", "-x", "junk"},
			allowed: []string{"-a"},
			want:    []string{"-a", "http://localhost:8000"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.json", "-a", "addr"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "flag followed by another flag",
			args:    []string{"-a", "-t", "5"},
			allowed: []string{"-a"},
			want:    []string{"-a"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "addr"},
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cli", "-c", "conf.json", "-a", "addr"}
	require.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"cli", "-a", "addr"}
	require.Equal(t, "", JsonConfigFlags())
}
