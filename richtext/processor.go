package richtext

import (
	"github.com/beevik/etree"
	"github.com/rgonek/richtext-converter/htmlfilter"
)

// Processor converts between editing view HTML and stored RichText XML.
// A Processor is immutable after creation and safe for concurrent use; each
// conversion works on its own tree.
type Processor struct {
	config Config
}

type state struct {
	config   Config
	warnings []Warning
}

// New creates a Processor with the given config.
func New(config Config) (*Processor, error) {
	cfg := config.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Processor{config: cfg}, nil
}

// Strictness returns the mode the processor was configured with.
func (p *Processor) Strictness() Strictness {
	return p.config.Strictness
}

// ToData converts an editing view fragment to stored RichText XML.
func (p *Processor) ToData(view string) (Result, error) {
	doc, err := ParseView(view)
	if err != nil {
		return Result{}, err
	}

	warnings := p.FilterToData(doc.Root())
	markup, err := WriteData(doc)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Markup:   markup,
		Warnings: warnings,
	}, nil
}

// ToView converts stored RichText XML to an editing view fragment. The
// RichText root div is not part of the fragment.
func (p *Processor) ToView(data string) (Result, error) {
	doc, err := ParseData(data)
	if err != nil {
		return Result{}, err
	}

	warnings := p.FilterToView(doc.Root())
	markup, err := RenderView(doc.Root())
	if err != nil {
		return Result{}, err
	}

	return Result{
		Markup:   markup,
		Warnings: warnings,
	}, nil
}

// FilterToData applies the toData rules to all descendants of root in
// place. root itself is left untouched.
func (p *Processor) FilterToData(root *etree.Element) []Warning {
	s := p.newState()
	htmlfilter.New(s.dataRules(), htmlfilter.WithLogger(p.config.Logger)).ApplyTo(root)
	p.config.Logger.Debug("filtered to data",
		"strictness", p.config.Strictness.String(),
		"warnings", len(s.warnings),
	)
	return s.warnings
}

// FilterToView applies the toView rules to all descendants of root in
// place.
func (p *Processor) FilterToView(root *etree.Element) []Warning {
	s := p.newState()
	htmlfilter.New(s.viewRules(), htmlfilter.WithLogger(p.config.Logger)).ApplyTo(root)
	p.config.Logger.Debug("filtered to view", "warnings", len(s.warnings))
	return s.warnings
}

func (p *Processor) newState() *state {
	return &state{config: p.config}
}

func (s *state) addWarning(warnType WarningType, element, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:    warnType,
		Element: element,
		Message: message,
	})
}
