package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/jurisref"
)

// Ensure Converter implements jurisref.Converter at compile time.
var _ jurisref.Converter = (*Converter)(nil)

var blankLinesRe = regexp.MustCompile(`\n{3,}`)

// Converter renders note bodies as Markdown instead of reflowed plain text.
// Curia paragraph tables come out as Markdown tables.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	conv.Register.TagType("img", converter.TagTypeRemove, converter.PriorityStandard)
	conv.Register.TagType("form", converter.TagTypeRemove, converter.PriorityStandard)
	conv.Register.TagType("button", converter.TagTypeRemove, converter.PriorityStandard)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into Markdown. A fragment with no text
// yields an empty string.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", jurisref.Errorf(jurisref.EINTERNAL, "convert markdown: %v", err)
	}

	result = blankLinesRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result), nil
}
