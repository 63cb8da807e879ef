package richtext

import (
	"github.com/beevik/etree"
	"github.com/rgonek/richtext-converter/htmlfilter"
)

// tableToData merges all rows into a single tbody. Rows from thead and
// tfoot are marked with a class so toView can restore the sections. The
// first tbody keeps its attributes; further bodies are dissolved.
func tableToData(el *htmlfilter.MutableElement) {
	table := el.Element()

	var head, body, foot []*etree.Element
	var target, anchor *etree.Element
	var sections []*etree.Element
	for _, child := range table.ChildElements() {
		switch {
		case htmlfilter.IsElement(child, "thead"):
			head = append(head, rowsOf(child)...)
			sections = append(sections, child)
		case htmlfilter.IsElement(child, "tfoot"):
			foot = append(foot, rowsOf(child)...)
			sections = append(sections, child)
		case htmlfilter.IsElement(child, "tbody"):
			body = append(body, rowsOf(child)...)
			if target == nil {
				target = child
			} else {
				sections = append(sections, child)
			}
		case htmlfilter.IsElement(child, "tr"):
			body = append(body, child)
		default:
			continue
		}
		if anchor == nil {
			anchor = child
		}
	}
	if anchor == nil {
		return
	}

	if target == nil {
		target = etree.NewElement("tbody")
		htmlfilter.InsertBefore(table, target, anchor)
	}
	for _, row := range head {
		markRow(row, ClassHeaderRow)
		htmlfilter.InsertBefore(target, row, nil)
	}
	for _, row := range body {
		htmlfilter.InsertBefore(target, row, nil)
	}
	for _, row := range foot {
		markRow(row, ClassFooterRow)
		htmlfilter.InsertBefore(target, row, nil)
	}
	for _, section := range sections {
		htmlfilter.Detach(section)
	}
}

// tableToView moves marked rows back into thead and tfoot. A tbody left
// without rows is removed.
func tableToView(el *htmlfilter.MutableElement) {
	table := el.Element()

	var body *etree.Element
	for _, child := range table.ChildElements() {
		if htmlfilter.IsElement(child, "tbody") {
			body = child
			break
		}
	}
	if body == nil {
		return
	}

	var head, foot []*etree.Element
	for _, row := range rowsOf(body) {
		switch {
		case unmarkRow(row, ClassHeaderRow):
			head = append(head, row)
		case unmarkRow(row, ClassFooterRow):
			foot = append(foot, row)
		}
	}

	if len(head) > 0 {
		thead := etree.NewElement("thead")
		htmlfilter.InsertBefore(table, thead, body)
		for _, row := range head {
			htmlfilter.InsertBefore(thead, row, nil)
		}
	}
	if len(foot) > 0 {
		tfoot := etree.NewElement("tfoot")
		table.InsertChildAt(body.Index()+1, tfoot)
		for _, row := range foot {
			htmlfilter.InsertBefore(tfoot, row, nil)
		}
	}
	if (len(head) > 0 || len(foot) > 0) && htmlfilter.IsEmpty(body) {
		htmlfilter.Detach(body)
	}
}

func headerCellToData(el *htmlfilter.MutableElement) {
	el.SetName("td")
	el.Attributes().AddClass(ClassHeaderCell)
}

func headerCellToView(el *htmlfilter.MutableElement) {
	if !el.Attributes().HasClass(ClassHeaderCell) {
		return
	}
	el.Attributes().RemoveClass(ClassHeaderCell)
	el.SetName("th")
}

// unwrapTableFigure removes the figure the editor wraps around tables.
func unwrapTableFigure(el *htmlfilter.MutableElement) {
	if el.FindFirst("table") != nil {
		el.SetReplaceByChildren(true)
	}
}

func rowsOf(section *etree.Element) []*etree.Element {
	var rows []*etree.Element
	for _, child := range section.ChildElements() {
		if htmlfilter.IsElement(child, "tr") {
			rows = append(rows, child)
		}
	}
	return rows
}

func markRow(row *etree.Element, class string) {
	m := htmlfilter.NewMutableElement(row)
	m.Attributes().AddClass(class)
	m.Persist()
}

// unmarkRow removes the class from row and reports whether it was present.
func unmarkRow(row *etree.Element, class string) bool {
	m := htmlfilter.NewMutableElement(row)
	if !m.Attributes().HasClass(class) {
		return false
	}
	m.Attributes().RemoveClass(class)
	m.Persist()
	return true
}
