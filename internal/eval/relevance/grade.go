package relevance

import "strconv"

// Kind distinguishes judged documents from the two sentinel states.
type Kind uint8

const (
	KindJudged Kind = iota
	// KindUnjudged marks a document that was pooled but never assessed.
	KindUnjudged
	// KindNotPooled marks a retrieved document absent from the judgments.
	KindNotPooled
)

func (k Kind) String() string {
	switch k {
	case KindJudged:
		return "judged"
	case KindUnjudged:
		return "unjudged"
	case KindNotPooled:
		return "not_pooled"
	default:
		return "unknown"
	}
}

// Grade is the relevance of one retrieved document. Sentinels carry no level,
// so they can never be mistaken for Judged(0).
type Grade struct {
	kind  Kind
	level int
}

func Judged(level int) Grade {
	if level < 0 {
		return Unjudged()
	}
	return Grade{kind: KindJudged, level: level}
}

func Unjudged() Grade {
	return Grade{kind: KindUnjudged}
}

func NotPooled() Grade {
	return Grade{kind: KindNotPooled}
}

func (g Grade) Kind() Kind {
	return g.kind
}

// Level returns the judged level; ok is false for sentinels.
func (g Grade) Level() (level int, ok bool) {
	if g.kind != KindJudged {
		return 0, false
	}
	return g.level, true
}

func (g Grade) IsJudged() bool {
	return g.kind == KindJudged
}

// AtLeast reports whether g is judged with level >= threshold.
func (g Grade) AtLeast(threshold int) bool {
	return g.kind == KindJudged && g.level >= threshold
}

func (g Grade) String() string {
	if g.kind == KindJudged {
		return strconv.Itoa(g.level)
	}
	return g.kind.String()
}
