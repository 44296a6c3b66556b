package datetime

import (
	"fmt"
	"math/bits"
	"regexp"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

type field uint16

const (
	fieldYear field = 1 << iota
	fieldYear2
	fieldMonth
	fieldDay
	fieldDayOfYear
	fieldWeekday
	fieldHour
	fieldClockHour
	fieldAmPm
	fieldMinute
	fieldSecond
	fieldFraction
)

const timeFields = fieldHour | fieldClockHour | fieldAmPm | fieldMinute | fieldSecond | fieldFraction

const (
	reservedChars    = "{}#"
	zoneLetters      = "GVvzOXxZ"
	unsupportedChars = "QqYwWecFKkAnNpBg"
	maxSections      = 8
)

// Values used to check that a layout reads back what the elements render.
// Between them they cover AM and PM and every field width.
var checkTimes = [...]time.Time{
	time.Date(2009, time.November, 17, 20, 34, 58, 651387237, time.UTC),
	time.Date(1987, time.March, 4, 6, 12, 19, 102030405, time.UTC),
}

var (
	shortMonths   = names(12, func(i int) string { return time.Month(i + 1).String()[:3] })
	longMonths    = names(12, func(i int) string { return time.Month(i + 1).String() })
	shortWeekdays = names(7, func(i int) string { return time.Weekday(i).String()[:3] })
	longWeekdays  = names(7, func(i int) string { return time.Weekday(i).String() })
)

func names(n int, name func(int) string) string {
	all := make([]string, n)
	for i := range all {
		all[i] = name(i)
	}
	return "(?:" + strings.Join(all, "|") + ")"
}

// element is either literal text or a single field, in which case text holds
// the Go layout of that field. Bit i of sections is set when the element sits
// inside optional section i.
type element struct {
	text     string
	shape    string
	field    field
	token    string
	offset   int
	sections uint8
}

// variant is one way of reading a pattern: the mandatory elements plus a
// chosen set of optional sections.
type variant struct {
	elements []element
	fields   field
	layout   string
	shape    *regexp.Regexp
	err      error
}

// Pattern is a compiled date/time pattern such as "yyyy-MM-dd HH:mm:ss".
// A Pattern is immutable and safe for concurrent use.
type Pattern struct {
	pattern  string
	elements []element
	variants []*variant
}

// Compile parses a pattern. Letters name fields, text between single quotes
// is literal, two single quotes are a literal quote, square brackets enclose
// an optional section and every other character is literal.
//
//	y, yyy, yyyy, u  year                  yy, uu   two-digit year (2000-2099)
//	M, MM            month number          MMM      short month name   MMMM  full month name
//	d, dd            day of month          DDD      day of year
//	E, EE, EEE       short weekday name    EEEE     full weekday name
//	H, HH            hour (0-23)           h, hh    clock hour (1-12)  a     AM/PM
//	m, mm            minute                s, ss    second
//	S...             fraction of a second, written directly after '.' or ','
func Compile(pattern string) (*Pattern, error) {
	p := &Pattern{pattern: pattern}
	rs := []rune(pattern)
	var open []int
	var mask uint8
	nsections := 0
	for i := 0; i < len(rs); {
		c := rs[i]
		switch {
		case c == '\'':
			next, err := p.addQuoted(rs, i, mask)
			if err != nil {
				return nil, err
			}
			i = next
		case c == '[':
			if nsections == maxSections {
				return nil, p.errorf(i, "more than %d optional sections", maxSections)
			}
			open = append(open, i)
			mask |= 1 << nsections
			nsections++
			i++
		case c == ']':
			if len(open) == 0 {
				return nil, p.errorf(i, "unbalanced ']'")
			}
			open = open[:len(open)-1]
			mask &^= 1 << (bits.Len8(mask) - 1)
			i++
		case isPatternLetter(c):
			j := i
			for j < len(rs) && rs[j] == c {
				j++
			}
			if err := p.addField(c, j-i, i, mask); err != nil {
				return nil, err
			}
			i = j
		case strings.ContainsRune(reservedChars, c):
			return nil, p.errorf(i, "reserved character %q", c)
		default:
			p.addLiteral(string(c), mask)
			i++
		}
	}
	if len(open) > 0 {
		return nil, p.errorf(open[len(open)-1], "unclosed optional section")
	}

	p.buildVariants(nsections)
	return p, nil
}

// MustCompile is like Compile but panics if the pattern is malformed.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pattern) String() string {
	return p.pattern
}

// Layout returns the equivalent Go reference layout, with every optional
// section present.
func (p *Pattern) Layout() string {
	return p.variants[0].layout
}

// FormatDateTime renders value. The value must be valid.
func (p *Pattern) FormatDateTime(value civil.DateTime) (string, error) {
	if !value.IsValid() {
		return "", invalidArgument("date-time %s is not valid", value)
	}
	return render(p.elements, value.In(time.UTC)), nil
}

// FormatDate renders value. Optional sections holding time-of-day fields are
// left out; any other time-of-day field is an error.
func (p *Pattern) FormatDate(value civil.Date) (string, error) {
	if !value.IsValid() {
		return "", invalidArgument("date %s is not valid", value)
	}
	var skip uint8
	for _, el := range p.elements {
		if el.field&timeFields == 0 {
			continue
		}
		if el.sections == 0 {
			return "", p.errorf(el.offset, "field %q needs a time of day", el.token)
		}
		skip |= 1 << (bits.Len8(el.sections) - 1)
	}
	elements := make([]element, 0, len(p.elements))
	for _, el := range p.elements {
		if el.sections&skip == 0 {
			elements = append(elements, el)
		}
	}
	return render(elements, value.In(time.UTC)), nil
}

// ParseDateTime reads a date-time from text. The pattern must supply a full
// date and an hour; minutes, seconds and fractions default to zero.
func (p *Pattern) ParseDateTime(text string) (civil.DateTime, error) {
	t, err := p.parse(text, true)
	if err != nil {
		return civil.DateTime{}, err
	}
	return civil.DateTimeOf(t), nil
}

// ParseDate reads a date from text. Any time-of-day fields in the pattern must
// still match but are discarded.
func (p *Pattern) ParseDate(text string) (civil.Date, error) {
	t, err := p.parse(text, false)
	if err != nil {
		return civil.Date{}, err
	}
	return civil.DateOf(t), nil
}

// parse tries each variant, most optional sections first, and reports the
// error of the fullest one when none match.
func (p *Pattern) parse(text string, needTime bool) (time.Time, error) {
	var first error
	for _, v := range p.variants {
		t, err := v.parse(p.pattern, text, needTime)
		if err == nil {
			return t, nil
		}
		if first == nil {
			first = err
		}
	}
	return time.Time{}, first
}

func (v *variant) parse(pattern, text string, needTime bool) (time.Time, error) {
	if v.err != nil {
		return time.Time{}, v.err
	}
	if !v.resolvesDate() {
		return time.Time{}, &ParseError{Text: text, Pattern: pattern, Reason: "pattern does not supply a complete date"}
	}
	if needTime && !v.resolvesTime() {
		return time.Time{}, &ParseError{Text: text, Pattern: pattern, Reason: "pattern does not supply an hour of day"}
	}
	t, err := time.Parse(v.layout, text)
	if err != nil {
		return time.Time{}, &ParseError{Text: text, Pattern: pattern, Err: err}
	}
	// time.Parse is lenient about widths, name case and a fraction after the
	// seconds; the shape holds the text to exactly what the pattern describes.
	if !v.shape.MatchString(text) {
		return time.Time{}, &ParseError{Text: text, Pattern: pattern, Reason: "text does not match the field widths and names of the pattern"}
	}
	// Go maps two-digit years 69-99 to the 1900s.
	if v.fields&fieldYear2 != 0 && t.Year() < 2000 {
		t = t.AddDate(100, 0, 0)
	}
	for _, el := range v.elements {
		if el.field != fieldWeekday {
			continue
		}
		if name := t.Format(el.text); !strings.Contains(text, name) {
			return time.Time{}, &ParseError{Text: text, Pattern: pattern, Reason: fmt.Sprintf("weekday does not match the date, expected %s", name)}
		}
	}
	return t, nil
}

func (v *variant) resolvesDate() bool {
	if v.fields&fieldYear == 0 {
		return false
	}
	return v.fields&(fieldMonth|fieldDay) == fieldMonth|fieldDay || v.fields&fieldDayOfYear != 0
}

func (v *variant) resolvesTime() bool {
	return v.fields&fieldHour != 0 || v.fields&(fieldClockHour|fieldAmPm) == fieldClockHour|fieldAmPm
}

// check reports a layout that does not read back what the elements render:
// literal text such as a quoted 'Jan' that time.Parse takes for a layout
// element, or a '.' after the seconds that time.Parse takes for a fraction.
func (v *variant) check(pattern string) error {
	collision := &FormatError{Pattern: pattern, Offset: -1, Reason: "literal text collides with a Go layout element and cannot be parsed"}
	for _, at := range checkTimes {
		text := render(v.elements, at)
		if at.Format(v.layout) != text {
			return collision
		}
		if !v.resolvesDate() {
			continue
		}
		t, err := time.Parse(v.layout, text)
		if err != nil || render(v.elements, t) != text {
			return collision
		}
	}
	return nil
}

func (p *Pattern) buildVariants(nsections int) {
	masks := make([]int, 1<<nsections)
	for m := range masks {
		masks[m] = m
	}
	sort.SliceStable(masks, func(i, j int) bool {
		return bits.OnesCount(uint(masks[i])) > bits.OnesCount(uint(masks[j]))
	})

	seen := make(map[string]bool)
	for _, m := range masks {
		v := &variant{}
		var layout, shape strings.Builder
		shape.WriteString("^")
		for _, el := range p.elements {
			if el.sections&^uint8(m) != 0 {
				continue
			}
			v.elements = append(v.elements, el)
			v.fields |= el.field
			layout.WriteString(el.text)
			shape.WriteString(el.shape)
		}
		shape.WriteString("$")
		v.layout = layout.String()
		if seen[v.layout] {
			continue
		}
		seen[v.layout] = true
		v.shape = regexp.MustCompile(shape.String())
		v.err = v.check(p.pattern)
		p.variants = append(p.variants, v)
	}
}

func render(elements []element, t time.Time) string {
	var b strings.Builder
	for _, el := range elements {
		if el.field == 0 {
			b.WriteString(el.text)
		} else {
			b.WriteString(t.Format(el.text))
		}
	}
	return b.String()
}

func (p *Pattern) addQuoted(rs []rune, start int, mask uint8) (int, error) {
	i := start + 1
	if i < len(rs) && rs[i] == '\'' {
		p.addLiteral("'", mask)
		return i + 1, nil
	}
	var b strings.Builder
	for i < len(rs) {
		if rs[i] == '\'' {
			if i+1 < len(rs) && rs[i+1] == '\'' {
				b.WriteRune('\'')
				i += 2
				continue
			}
			p.addLiteral(b.String(), mask)
			return i + 1, nil
		}
		b.WriteRune(rs[i])
		i++
	}
	return 0, p.errorf(start, "unterminated quoted literal")
}

func (p *Pattern) addLiteral(s string, mask uint8) {
	if s == "" {
		return
	}
	if n := len(p.elements); n > 0 && p.elements[n-1].field == 0 && p.elements[n-1].sections == mask {
		p.elements[n-1].text += s
		p.elements[n-1].shape += regexp.QuoteMeta(s)
		return
	}
	p.elements = append(p.elements, element{text: s, shape: regexp.QuoteMeta(s), offset: -1, sections: mask})
}

func (p *Pattern) addField(c rune, n, offset int, mask uint8) error {
	token := strings.Repeat(string(c), n)
	var layout, shape string
	var f field

	switch c {
	case 'y', 'u':
		switch {
		case n == 2:
			layout, shape, f = "06", `\d{2}`, fieldYear|fieldYear2
		case n <= 4:
			layout, shape, f = "2006", `\d{4}`, fieldYear
		}
	case 'M', 'L':
		if n <= 4 {
			layout = [...]string{"1", "01", "Jan", "January"}[n-1]
			shape = [...]string{`\d{1,2}`, `\d{2}`, shortMonths, longMonths}[n-1]
			f = fieldMonth
		}
	case 'd':
		if n <= 2 {
			layout, shape, f = [...]string{"2", "02"}[n-1], [...]string{`\d{1,2}`, `\d{2}`}[n-1], fieldDay
		}
	case 'D':
		if n == 3 {
			layout, shape, f = "002", `\d{3}`, fieldDayOfYear
		}
	case 'E':
		switch {
		case n <= 3:
			layout, shape, f = "Mon", shortWeekdays, fieldWeekday
		case n == 4:
			layout, shape, f = "Monday", longWeekdays, fieldWeekday
		}
	case 'H':
		if n <= 2 {
			layout, shape, f = "15", [...]string{`\d{1,2}`, `\d{2}`}[n-1], fieldHour
		}
	case 'h':
		if n <= 2 {
			layout, shape, f = [...]string{"3", "03"}[n-1], [...]string{`\d{1,2}`, `\d{2}`}[n-1], fieldClockHour
		}
	case 'a':
		if n == 1 {
			layout, shape, f = "PM", `(?:AM|PM)`, fieldAmPm
		}
	case 'm':
		if n <= 2 {
			layout, shape, f = [...]string{"4", "04"}[n-1], [...]string{`\d{1,2}`, `\d{2}`}[n-1], fieldMinute
		}
	case 's':
		if n <= 2 {
			layout, shape, f = [...]string{"5", "05"}[n-1], [...]string{`\d{1,2}`, `\d{2}`}[n-1], fieldSecond
		}
	case 'S':
		if n <= 9 {
			sep, ok := p.takeFractionSeparator(mask)
			if !ok {
				return p.errorf(offset, "fraction %q must directly follow a literal '.' or ',' in the same section", token)
			}
			layout = sep + strings.Repeat("0", n)
			shape = regexp.QuoteMeta(sep) + fmt.Sprintf(`\d{%d}`, n)
			f = fieldFraction
		}
	default:
		switch {
		case strings.ContainsRune(zoneLetters, c):
			return p.errorf(offset, "field %q is not supported: eras and time zones are out of scope", token)
		case strings.ContainsRune(unsupportedChars, c):
			return p.errorf(offset, "field %q is not supported", token)
		}
		return p.errorf(offset, "unknown pattern letter %q", c)
	}

	if layout == "" {
		return p.errorf(offset, "unsupported width %d for field %q", n, string(c))
	}
	p.elements = append(p.elements, element{text: layout, shape: shape, field: f, token: token, offset: offset, sections: mask})
	return nil
}

// takeFractionSeparator removes the trailing '.' or ',' from the preceding
// literal so that it becomes part of the fraction's layout.
func (p *Pattern) takeFractionSeparator(mask uint8) (string, bool) {
	n := len(p.elements)
	if n == 0 || p.elements[n-1].field != 0 || p.elements[n-1].sections != mask {
		return "", false
	}
	last := &p.elements[n-1]
	if !strings.HasSuffix(last.text, ".") && !strings.HasSuffix(last.text, ",") {
		return "", false
	}
	sep := last.text[len(last.text)-1:]
	last.text = last.text[:len(last.text)-1]
	last.shape = regexp.QuoteMeta(last.text)
	if last.text == "" {
		p.elements = p.elements[:n-1]
	}
	return sep, true
}

func (p *Pattern) errorf(offset int, format string, args ...interface{}) error {
	return &FormatError{Pattern: p.pattern, Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func isPatternLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
