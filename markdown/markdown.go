// Package markdown bridges Markdown and stored RichText. Import renders
// GFM to HTML and stores it through the toData rules; Export runs the
// toView rules and converts the view HTML to Markdown.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/rgonek/richtext-converter/richtext"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Importer converts GFM Markdown to stored RichText.
type Importer struct {
	processor *richtext.Processor
	parser    goldmark.Markdown
}

// NewImporter returns an Importer storing through processor.
func NewImporter(processor *richtext.Processor) *Importer {
	return &Importer{
		processor: processor,
		parser: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Import converts markdown to RichText XML. Raw HTML in markdown is not
// rendered.
func (i *Importer) Import(markdown string) (richtext.Result, error) {
	var buf bytes.Buffer
	if err := i.parser.Convert([]byte(markdown), &buf); err != nil {
		return richtext.Result{}, fmt.Errorf("failed to render markdown: %w", err)
	}
	return i.processor.ToData(buf.String())
}

// Exporter converts stored RichText to Markdown.
type Exporter struct {
	processor *richtext.Processor
	conv      *converter.Converter
}

// NewExporter returns an Exporter reading through processor.
func NewExporter(processor *richtext.Processor) *Exporter {
	return &Exporter{
		processor: processor,
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Export converts RichText XML to Markdown. The result carries the
// warnings of the toView pass.
func (e *Exporter) Export(data string) (richtext.Result, error) {
	view, err := e.processor.ToView(data)
	if err != nil {
		return richtext.Result{}, err
	}
	md, err := e.conv.ConvertString(view.Markup)
	if err != nil {
		return richtext.Result{}, fmt.Errorf("failed to convert view HTML to markdown: %w", err)
	}
	return richtext.Result{Markup: md, Warnings: view.Warnings}, nil
}
