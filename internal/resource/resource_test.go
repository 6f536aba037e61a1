package resource

import (
	"strings"
	"testing"

	"compcat/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_Component(t *testing.T) {
	cat := catalog.Samples()
	r := NewRenderer(cat)

	got, err := r.Read("component://Card")
	require.NoError(t, err)
	assert.Equal(t, "component://Card", got.URI)
	assert.Equal(t, MIMEType, got.MIMEType)

	card, _ := cat.Component("Card")
	assert.Contains(t, got.Text, "# Card Component")
	assert.Contains(t, got.Text, card.Description)
	for _, p := range card.Props {
		assert.Contains(t, got.Text, p.Name)
	}
	assert.Contains(t, got.Text, "- **children** (React.ReactNode): The main content of the card *Required*")
	assert.Contains(t, got.Text, "- **title** (string): Optional title for the card header\n")
	assert.Contains(t, got.Text, "### Basic Card\n\nA simple card with title and content\n\n```tsx\n<Card")
	assert.True(t, strings.HasPrefix(got.Text, "# Card Component\n\nA flexible card"))
}

func TestRead_Documentation(t *testing.T) {
	r := NewRenderer(catalog.Samples())

	got, err := r.Read("docs://theming")
	require.NoError(t, err)

	want := "# Theming and Customization\n\n" +
		"Learn how to customize the appearance of components using CSS variables and custom themes.\n\n" +
		"## CSS Variables\n\nUse CSS custom properties to customize component appearance:\n\n" +
		"```\n:root {\n  --btn-primary-bg: #007bff;\n  --btn-primary-color: white;\n  --card-border-radius: 8px;\n  --input-border-color: #ddd;\n}\n```\n\n" +
		"## Related Components\n\nButton, Card"
	assert.Equal(t, want, got.Text)
}

func TestRead_NotFound(t *testing.T) {
	r := NewRenderer(catalog.Samples())

	tests := []string{
		"component://Unknown",
		"component://card", // exact key only
		"docs://missing",
		"file:///etc/passwd",
		"Button",
		"",
	}

	for _, uri := range tests {
		t.Run(uri, func(t *testing.T) {
			_, err := r.Read(uri)
			require.Error(t, err)
			assert.True(t, catalog.IsKind(err, catalog.KindResourceNotFound))

			var catErr *catalog.Error
			require.ErrorAs(t, err, &catErr)
			assert.Equal(t, uri, catErr.Data["uri"])
		})
	}
}

func TestList(t *testing.T) {
	r := NewRenderer(catalog.Samples())

	got := r.List()
	uris := make([]string, len(got))
	for i, d := range got {
		uris[i] = d.URI
	}

	assert.Equal(t, []string{
		"component://Button",
		"component://Card",
		"component://Input",
		"docs://getting-started",
		"docs://theming",
	}, uris)
	assert.Equal(t, "Button Component", got[0].Name)
	assert.Equal(t, "Documentation: getting-started", got[3].Name)
	assert.Equal(t, "Getting Started with React Components", got[3].Description)
}

func TestList_Empty(t *testing.T) {
	assert.Empty(t, NewRenderer(catalog.Empty()).List())
}

func TestRenderComponent_NoPropsOrExamples(t *testing.T) {
	got := RenderComponent(catalog.Component{Name: "Spacer", Description: "Blank space", SourceCode: "export {}"})

	assert.Equal(t, "# Spacer Component\n\nBlank space\n\n## Source Code\n\n```tsx\nexport {}\n```\n\n## Props\n\n\n\n## Examples\n\n", got)
}
