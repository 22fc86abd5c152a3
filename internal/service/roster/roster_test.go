package roster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "one name per line",
			text: "Ana Díaz\nBen Ruiz\n",
			want: []string{"Ana Díaz", "Ben Ruiz"},
		},
		{
			name: "blank lines and padding",
			text: "\n   Ana   Díaz  \r\n\n\tBen\n  \n",
			want: []string{"Ana Díaz", "Ben"},
		},
		{
			name: "empty",
			text: "   \n\n",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLines(tt.text))
		})
	}
}

func TestParseHTML(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "table first cells",
			html: `<table>
				<tr><th>Name</th><th>Email</th></tr>
				<tr><td> Ana Díaz </td><td>ana@example.com</td></tr>
				<tr><td>Ben
					Ruiz</td><td>ben@example.com</td></tr>
				<tr><td></td><td>nobody</td></tr>
			</table>`,
			want: []string{"Ana Díaz", "Ben Ruiz"},
		},
		{
			name: "list items",
			html: `<ul><li>Ana</li><li> </li><li>Ben</li></ul>`,
			want: []string{"Ana", "Ben"},
		},
		{
			name: "nothing usable",
			html: `<p>hello</p>`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHTML(strings.NewReader(tt.html))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
