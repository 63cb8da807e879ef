package richtext

import (
	"strconv"

	"github.com/rgonek/richtext-converter/htmlfilter"
)

// dataRules builds the rule set mapping view markup to stored RichText.
func (s *state) dataRules() htmlfilter.RuleSet {
	rules := htmlfilter.RuleSet{
		Elements: map[string]htmlfilter.ElementRule{
			htmlfilter.BeforeElement:           htmlfilter.AllRules(unwrapDiff, removeForeignNamespace, langToData),
			htmlfilter.AfterElement:            s.enforceSchema,
			htmlfilter.AfterElementAndChildren: cleanupAfterChildren,

			"table":  tableToData,
			"th":     headerCellToData,
			"figure": unwrapTableFigure,
			"br":     removeBlockBreak,

			"b":      renameTo("strong"),
			"i":      renameTo("em"),
			"u":      spanWithClass(ClassUnderline),
			"s":      spanWithClass(ClassStrike),
			"strike": spanWithClass(ClassStrike),
			"del":    spanWithClass(ClassStrike),
			"code":   spanWithClass(ClassCode),

			"a":   linkToData,
			"img": imageToData,
		},
		Text: stripInvalidCharacters,
	}
	for level := 1; level <= 6; level++ {
		rules.Elements["h"+strconv.Itoa(level)] = headingToData(level)
	}
	if s.config.Highlight {
		rules = rules.With("mark", markToData)
	}
	for name, rule := range s.config.Rules {
		if rule.ToData != nil {
			rules = rules.With(name, rule.ToData)
		}
	}
	return rules
}

// viewRules builds the rule set mapping stored RichText to view markup.
func (s *state) viewRules() htmlfilter.RuleSet {
	rules := htmlfilter.RuleSet{
		Elements: map[string]htmlfilter.ElementRule{
			htmlfilter.BeforeElement: langToView,

			"table": tableToView,
			"td":    headerCellToView,
			"p":     headingToView,
			"em":    renameTo("i"),
			"span":  spanToView,
			"a":     linkToView,
			"img":   imageToView,
		},
	}
	if s.config.Highlight {
		rules = rules.With("span", markToView)
	}
	for name, rule := range s.config.Rules {
		if rule.ToView == nil {
			continue
		}
		on := rule.ToViewOn
		if on == "" {
			on = name
		}
		rules = rules.With(on, rule.ToView)
	}
	return rules
}

func renameTo(name string) htmlfilter.ElementRule {
	return func(el *htmlfilter.MutableElement) {
		el.SetName(name)
	}
}

// pending reports whether an earlier rule already decided to drop or
// rename the element.
func pending(el *htmlfilter.MutableElement) bool {
	return el.Remove() || el.ReplaceByChildren() || el.Replace()
}
