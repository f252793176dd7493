package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "Male - White", want: "Male - White"},
		{name: "backslash", in: `a\b`, want: `a\textbackslash{}b`},
		{name: "braces", in: "text{with}braces", want: `text\{with\}braces`},
		{name: "dollar", in: "cost $100", want: `cost \$100`},
		{name: "ampersand", in: "A & B", want: `A \& B`},
		{name: "percent", in: "91.5%", want: `91.5\%`},
		{name: "hash", in: "issue #123", want: `issue \#123`},
		{name: "caret", in: "x^2", want: `x\textasciicircum{}2`},
		{name: "underscore", in: "resume_1", want: `resume\_1`},
		{name: "tilde", in: "~home", want: `\textasciitilde{}home`},
		{name: "angle brackets and bar", in: "<a|b>", want: `\textless{}a\textbar{}b\textgreater{}`},
		{name: "newlines collapse", in: "Name: X\r\nLine\nEnd", want: "Name: X Line End"},
		{name: "no double escaping", in: `\{`, want: `\textbackslash{}\{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.in))
		})
	}
}
