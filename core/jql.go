package core

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

type jqlOp int

const (
	opEquals jqlOp = iota
	opNotEquals
	opContains
	opNotContains
	opIn
	opNotIn
	opIsEmpty
	opIsNotEmpty
)

var jqlFields = map[string]string{
	"project":         "project",
	"key":             "key",
	"issuekey":        "key",
	"id":              "key",
	"status":          "status",
	"assignee":        "assignee",
	"reporter":        "reporter",
	"type":            "type",
	"issuetype":       "type",
	"priority":        "priority",
	"resolution":      "resolution",
	"component":       "component",
	"fixversion":      "fixVersion",
	"affectedversion": "affectedVersion",
	"text":            "text",
	"summary":         "summary",
	"description":     "description",
	"environment":     "environment",
	"comment":         "comment",
	"created":         "created",
	"updated":         "updated",
	"duedate":         "duedate",
	"resolved":        "resolved",
}

// textFields only support the contains operators and equality.
var textFields = []string{"text", "summary", "description", "environment", "comment"}

type jqlValue struct {
	text        string
	currentUser bool
}

type jqlClause struct {
	field  string
	op     jqlOp
	values []jqlValue
}

type jqlOrder struct {
	field      string
	descending bool
}

type jqlQuery struct {
	source  string
	clauses []jqlClause
	order   []jqlOrder
}

type jqlToken struct {
	kind rune // 'w' word, 's' string, or the punctuation rune itself
	text string
	pos  int
}

// parseJQL parses the supported JQL subset: AND-joined clauses followed by
// an optional ORDER BY.
func parseJQL(source string) (*jqlQuery, error) {
	tokens, err := lexJQL(source)
	if err != nil {
		return nil, err
	}
	p := &jqlParser{tokens: tokens}
	q := &jqlQuery{source: source}
	if !p.atKeyword("order") && !p.done() {
		for {
			clause, err := p.clause()
			if err != nil {
				return nil, err
			}
			q.clauses = append(q.clauses, clause)
			if !p.atKeyword("and") {
				break
			}
			p.next()
		}
	}
	if p.atKeyword("order") {
		p.next()
		if !p.atKeyword("by") {
			return nil, p.errorf("expected BY after ORDER")
		}
		p.next()
		for {
			tok := p.next()
			if tok.kind != 'w' {
				return nil, p.errorf("expected a field to order by")
			}
			field, ok := jqlFields[strings.ToLower(tok.text)]
			if !ok {
				return nil, fmt.Errorf("jql: unknown field %q", tok.text)
			}
			order := jqlOrder{field: field}
			switch {
			case p.atKeyword("asc"):
				p.next()
			case p.atKeyword("desc"):
				p.next()
				order.descending = true
			}
			q.order = append(q.order, order)
			if p.peek().kind != ',' {
				break
			}
			p.next()
		}
	}
	if !p.done() {
		return nil, p.errorf("unexpected %q", p.peek().text)
	}
	return q, nil
}

type jqlParser struct {
	tokens []jqlToken
	pos    int
}

func (p *jqlParser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *jqlParser) peek() jqlToken {
	if p.done() {
		return jqlToken{kind: 0, pos: -1}
	}
	return p.tokens[p.pos]
}

func (p *jqlParser) next() jqlToken {
	tok := p.peek()
	if !p.done() {
		p.pos++
	}
	return tok
}

func (p *jqlParser) atKeyword(word string) bool {
	tok := p.peek()
	return tok.kind == 'w' && strings.EqualFold(tok.text, word)
}

func (p *jqlParser) errorf(format string, args ...any) error {
	pos := p.peek().pos
	if pos < 0 {
		return fmt.Errorf("jql: "+format+" at end of query", args...)
	}
	return fmt.Errorf("jql: "+format+" at offset %d", append(args, pos)...)
}

func (p *jqlParser) clause() (jqlClause, error) {
	tok := p.next()
	if tok.kind != 'w' && tok.kind != 's' {
		return jqlClause{}, p.errorf("expected a field name")
	}
	field, ok := jqlFields[strings.ToLower(tok.text)]
	if !ok {
		return jqlClause{}, fmt.Errorf("jql: unknown field %q", tok.text)
	}
	clause := jqlClause{field: field}
	op := p.next()
	switch {
	case op.kind == '=':
		clause.op = opEquals
	case op.kind == '!':
		clause.op = opNotEquals
	case op.kind == '~':
		clause.op = opContains
	case op.kind == '^':
		clause.op = opNotContains
	case op.kind == 'w' && strings.EqualFold(op.text, "in"):
		clause.op = opIn
	case op.kind == 'w' && strings.EqualFold(op.text, "not"):
		if !p.atKeyword("in") {
			return jqlClause{}, p.errorf("expected IN after NOT")
		}
		p.next()
		clause.op = opNotIn
	case op.kind == 'w' && strings.EqualFold(op.text, "is"):
		negate := false
		if p.atKeyword("not") {
			p.next()
			negate = true
		}
		if !p.atKeyword("empty") && !p.atKeyword("null") {
			return jqlClause{}, p.errorf("expected EMPTY after IS")
		}
		p.next()
		clause.op = opIsEmpty
		if negate {
			clause.op = opIsNotEmpty
		}
		return clause, nil
	default:
		return jqlClause{}, p.errorf("expected an operator after %s", tok.text)
	}
	if slices.Contains(textFields, field) && clause.op != opContains && clause.op != opNotContains && clause.op != opEquals && clause.op != opNotEquals {
		return jqlClause{}, fmt.Errorf("jql: field %s only supports =, !=, ~ and !~", tok.text)
	}
	if (clause.op == opContains || clause.op == opNotContains) && !slices.Contains(textFields, field) {
		return jqlClause{}, fmt.Errorf("jql: field %s does not support ~", tok.text)
	}
	if clause.op == opIn || clause.op == opNotIn {
		if p.next().kind != '(' {
			return jqlClause{}, p.errorf("expected ( after IN")
		}
		for {
			value, err := p.value()
			if err != nil {
				return jqlClause{}, err
			}
			clause.values = append(clause.values, value)
			sep := p.next()
			if sep.kind == ')' {
				break
			}
			if sep.kind != ',' {
				return jqlClause{}, p.errorf("expected , or ) in list")
			}
		}
		return clause, nil
	}
	value, err := p.value()
	if err != nil {
		return jqlClause{}, err
	}
	// "= EMPTY" is accepted as "is EMPTY".
	if value.text == "" && !value.currentUser {
		switch clause.op {
		case opEquals:
			clause.op = opIsEmpty
			return clause, nil
		case opNotEquals:
			clause.op = opIsNotEmpty
			return clause, nil
		}
	}
	clause.values = []jqlValue{value}
	return clause, nil
}

func (p *jqlParser) value() (jqlValue, error) {
	tok := p.next()
	switch tok.kind {
	case 's':
		return jqlValue{text: tok.text}, nil
	case 'w':
		lower := strings.ToLower(tok.text)
		if lower == "currentuser" && p.peek().kind == '(' {
			p.next()
			if p.next().kind != ')' {
				return jqlValue{}, p.errorf("expected ) after currentUser(")
			}
			return jqlValue{currentUser: true}, nil
		}
		if lower == "empty" || lower == "null" {
			return jqlValue{}, nil
		}
		return jqlValue{text: tok.text}, nil
	}
	return jqlValue{}, p.errorf("expected a value")
}

func lexJQL(source string) ([]jqlToken, error) {
	var tokens []jqlToken
	runes := []rune(source)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(' || r == ')' || r == ',' || r == '=' || r == '~':
			tokens = append(tokens, jqlToken{kind: r, text: string(r), pos: i})
			i++
		case r == '!':
			if i+1 < len(runes) && runes[i+1] == '=' {
				tokens = append(tokens, jqlToken{kind: '!', text: "!=", pos: i})
			} else if i+1 < len(runes) && runes[i+1] == '~' {
				tokens = append(tokens, jqlToken{kind: '^', text: "!~", pos: i})
			} else {
				return nil, fmt.Errorf("jql: unexpected ! at offset %d", i)
			}
			i += 2
		case r == '"' || r == '\'':
			start := i
			var b strings.Builder
			i++
			for i < len(runes) && runes[i] != r {
				if runes[i] == '\\' && i+1 < len(runes) {
					i++
				}
				b.WriteRune(runes[i])
				i++
			}
			if i >= len(runes) {
				return nil, fmt.Errorf("jql: unterminated string at offset %d", start)
			}
			i++
			tokens = append(tokens, jqlToken{kind: 's', text: b.String(), pos: start})
		case isWordRune(r):
			start := i
			for i < len(runes) && isWordRune(runes[i]) {
				i++
			}
			tokens = append(tokens, jqlToken{kind: 'w', text: string(runes[start:i]), pos: start})
		default:
			return nil, fmt.Errorf("jql: unexpected %q at offset %d", r, i)
		}
	}
	return tokens, nil
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("_.-@+:/", r)
}

// issueView is the data a query looks at. Names are resolved up front so
// matching is plain string comparison.
type issueView struct {
	issue       *issueRecord
	projectKey  string
	projectName string
	components  []string
	fixVersions []string
	affects     []string
	comments    []string
}

// matches reports whether the issue satisfies every clause.
func (q *jqlQuery) matches(view issueView, caller string) bool {
	for _, clause := range q.clauses {
		if !clause.matches(view, caller) {
			return false
		}
	}
	return true
}

func (c jqlClause) matches(view issueView, caller string) bool {
	candidates := c.candidates(view)
	switch c.op {
	case opIsEmpty:
		return len(candidates) == 0
	case opIsNotEmpty:
		return len(candidates) > 0
	case opContains, opNotContains:
		found := false
		needle := strings.ToLower(c.values[0].resolve(caller))
		for _, candidate := range candidates {
			if strings.Contains(strings.ToLower(candidate), needle) {
				found = true
				break
			}
		}
		return found == (c.op == opContains)
	}
	hit := false
	for _, value := range c.values {
		want := value.resolve(caller)
		if slices.ContainsFunc(candidates, func(candidate string) bool { return strings.EqualFold(candidate, want) }) {
			hit = true
			break
		}
	}
	if c.op == opNotEquals || c.op == opNotIn {
		return !hit
	}
	return hit
}

func (v jqlValue) resolve(caller string) string {
	if v.currentUser {
		return caller
	}
	return v.text
}

// candidates lists every spelling a clause value may match for the field:
// ids and names alike. An empty result means the field is empty.
func (c jqlClause) candidates(view issueView) []string {
	issue := view.issue
	nonEmpty := func(values ...string) []string {
		var out []string
		for _, v := range values {
			if v != "" {
				out = append(out, v)
			}
		}
		return out
	}
	switch c.field {
	case "project":
		return nonEmpty(view.projectKey, view.projectName, formatID(issue.ProjectID))
	case "key":
		return nonEmpty(issue.Key, formatID(issue.ID))
	case "status":
		return nonEmpty(issue.Status, statusName(issue.Status))
	case "assignee":
		return nonEmpty(issue.Assignee)
	case "reporter":
		return nonEmpty(issue.Reporter)
	case "type":
		it, _ := lookupIssueType(issue.Type)
		return nonEmpty(issue.Type, it.Name)
	case "priority":
		p, _ := lookupPriority(issue.Priority)
		return nonEmpty(issue.Priority, p.Name)
	case "resolution":
		if issue.Resolution == "" {
			if c.op == opEquals || c.op == opIn || c.op == opNotEquals || c.op == opNotIn {
				return []string{"Unresolved"}
			}
			return nil
		}
		r, _ := lookupResolution(issue.Resolution)
		return nonEmpty(issue.Resolution, r.Name)
	case "component":
		return view.components
	case "fixVersion":
		return view.fixVersions
	case "affectedVersion":
		return view.affects
	case "summary":
		return nonEmpty(issue.Summary)
	case "description":
		return nonEmpty(issue.Description)
	case "environment":
		return nonEmpty(issue.Environment)
	case "comment":
		return view.comments
	case "text":
		return append(nonEmpty(issue.Summary, issue.Description, issue.Environment), view.comments...)
	case "created":
		return nonEmpty(issue.Created.Format("2006-01-02"))
	case "updated":
		return nonEmpty(issue.Updated.Format("2006-01-02"))
	case "duedate":
		if issue.Duedate == nil {
			return nil
		}
		return []string{issue.Duedate.Format("2006-01-02")}
	case "resolved":
		if issue.Resolved == nil {
			return nil
		}
		return []string{issue.Resolved.Format("2006-01-02")}
	}
	return nil
}

// sortIssues orders views by the query's ORDER BY, falling back to
// ascending issue id.
func (q *jqlQuery) sortIssues(views []issueView) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i].issue, views[j].issue
		for _, order := range q.order {
			cmp := compareField(order.field, a, b)
			if cmp == 0 {
				continue
			}
			if order.descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return a.ID < b.ID
	})
}

func compareField(field string, a, b *issueRecord) int {
	switch field {
	case "key":
		return compareInt(a.ID, b.ID)
	case "created":
		return a.Created.Compare(b.Created)
	case "updated":
		return a.Updated.Compare(b.Updated)
	case "priority":
		// Lower ids are more urgent, so ascending runs from Trivial to Blocker.
		return compareInt(idNumber(b.Priority), idNumber(a.Priority))
	case "status":
		return compareInt(idNumber(a.Status), idNumber(b.Status))
	case "type":
		return compareInt(idNumber(a.Type), idNumber(b.Type))
	case "resolution":
		return compareInt(idNumber(a.Resolution), idNumber(b.Resolution))
	case "summary":
		return strings.Compare(strings.ToLower(a.Summary), strings.ToLower(b.Summary))
	case "assignee":
		return strings.Compare(a.Assignee, b.Assignee)
	case "reporter":
		return strings.Compare(a.Reporter, b.Reporter)
	case "project":
		return compareInt(a.ProjectID, b.ProjectID)
	case "duedate":
		return compareTimes(a.Duedate, b.Duedate)
	case "resolved":
		return compareTimes(a.Resolved, b.Resolved)
	}
	return 0
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareTimes(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(*b)
}

func idNumber(id string) int64 {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
