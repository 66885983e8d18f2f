package structural

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/archie/internal/core/domain"
)

const validComponent = `import React, { useState } from 'react';

// Card shows a title. Braces in comments are ignored: {{{
interface CardProps { title: string; }

/* block comment with ) and ] */
const Card: React.FC<CardProps> = ({ title }) => {
  const [open, setOpen] = useState(false);
  const label = "close (x)";
  return (
    <div className="p-4" onClick={() => setOpen(!open)}>
      <h2>{title}</h2>
      <p>Don't panic</p>
      {open && <span>{label}</span>}
    </div>
  );
};

export default Card;
`

const listComponent = `export default function Tips({ items }) {
  return (
    <section>
      <p>Don't panic {items.map(i => (
        <span key={i}>{i}</span>
      ))}</p>
      <a href="https://example.com/docs">Read https://example.com/docs (new tab)</a>
      <ol>
        <li>a) first, b) second</li>
      </ol>
      <>
        {items.length > 0 && <Badge count={items.length} />}
        {/* it's fine */}
      </>
    </section>
  );
}
`

func TestCheck_JSXText(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"apostrophe, url and paren in text", listComponent, ""},
		{"comparison is not a tag", "export default function A({ a, b }) {\n  return a < b ? (1) : (2);\n}", ""},
		{"generic call is not a tag", "export default function A() {\n  const [s] = useState<string>('');\n  return s;\n}", ""},
		{"arrow returns element", "const Row = ({ x }) => <td>{x}'s</td>;\nexport default Row;", ""},
		{"unclosed element", "export default function A() {\n  return <div>\n}", "2:10: unclosed JSX element"},
		{"unclosed tag", "export default function A() {\n  return <div className=\"x\"", "2:10: unclosed JSX tag"},
		{"unbalanced expression in text", "export default function A() {\n  return <p>{(x}</p>;\n}", "2:16: unexpected '}'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Check(tt.source)
			if tt.want == "" {
				assert.Nil(t, d)
				return
			}
			require.NotNil(t, d)
			assert.Equal(t, tt.want, d.Error())
		})
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"valid component", validComponent, ""},
		{"empty", "  \n\t", "1:1: source is empty"},
		{"error placeholder", domain.ErrorCode("quota exceeded"), "1:1: source is a generation error: quota exceeded"},
		{"missing export default", "const A = () => null;\n", "1:1: missing export default"},
		{"export default only in comment", "// export default A\nconst A = 1;", "1:1: missing export default"},
		{"export default after comment line", "// header\nexport default function A() { return null; }", ""},
		{"template literal", "export default function A() {\n  const s = `hi`;\n}", "2:13: template literals are not allowed"},
		{"backtick in string is fine", "export default function A() { return '`'; }", ""},
		{"unexpected closer", "export default function A() {\n  return null;\n}}", "3:2: unexpected '}'"},
		{"mismatched closer", "export default function A() { return (1]; }", "1:40: unexpected ']'"},
		{"unclosed opener", "export default function A() {\n  if (x) {\n    return 1;\n}", "1:29: unclosed '{'"},
		{"escaped quote in string", `export default function A() { return "a \" ( b"; }`, ""},
		{"line continuation", "export default function A() { return 'a\\\nb'; }\nconst x = (", "3:11: unclosed '('"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Check(tt.source)
			if tt.want == "" {
				assert.Nil(t, d)
				return
			}
			require.NotNil(t, d)
			assert.Equal(t, tt.want, d.Error())
		})
	}
}

func TestValidator_Validate(t *testing.T) {
	v := New()
	assert.Equal(t, Name, v.Name())

	res, err := v.Validate(context.Background(), validComponent)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, Name, res.Validator)
	assert.Empty(t, res.Diagnostic)

	res, err = v.Validate(context.Background(), "const A = 1;")
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "1:1: missing export default", res.Diagnostic)
}
