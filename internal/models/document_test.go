package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Meeting Notes", "Meeting Notes"},
		{`re/po:rt`, "report"},
		{`<a>"b"|c?*`, "abc"},
		{"  padded  ", "padded"},
		{`///`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.in))
		})
	}
}
