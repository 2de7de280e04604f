package catalog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var musclePattern = regexp.MustCompile(`^\d+\.\s+(.+)$`)

type fieldKind int

const (
	fieldNone fieldKind = iota
	fieldLatin
	fieldOrigin
	fieldInsertion
	fieldFunction
)

// label maps a line prefix to the field it sets. Czech labels are
// accepted alongside English ones so existing study notes load as-is.
type label struct {
	prefix string
	kind   fieldKind
}

var groupLabels = []string{"Group:", "Skupina:"}

var fieldLabels = []label{
	{"Latin name:", fieldLatin},
	{"Latinský název:", fieldLatin},
	{"Latinsky:", fieldLatin},
	{"Origin:", fieldOrigin},
	{"Začátek:", fieldOrigin},
	{"Insertion:", fieldInsertion},
	{"Úpon:", fieldInsertion},
	{"Function:", fieldFunction},
	{"Funkce:", fieldFunction},
}

// draft accumulates the raw text of one muscle while parsing.
type draft struct {
	name, group                        string
	latin, origin, insertion, function strings.Builder
}

func (d *draft) builder(k fieldKind) *strings.Builder {
	switch k {
	case fieldLatin:
		return &d.latin
	case fieldOrigin:
		return &d.origin
	case fieldInsertion:
		return &d.insertion
	case fieldFunction:
		return &d.function
	}
	return nil
}

func (d *draft) muscle(n int) Muscle {
	return Muscle{
		ID:        fmt.Sprintf("muscle-%d", n),
		Name:      d.name,
		Group:     d.group,
		LatinName: NewField(d.latin.String()),
		Origin:    NewField(d.origin.String()),
		Insertion: NewField(d.insertion.String()),
		Function:  NewField(d.function.String()),
	}
}

// Parse reads the line-oriented catalog format:
//
//	Group: Shoulder
//	1. Deltoid
//	Latin name: musculus deltoideus
//	Origin: lateral third of the clavicle,
//	acromion and spine of the scapula
//	Insertion: deltoid tuberosity of the humerus
//	Function: abduction of the arm
//
// A numbered line starts a new muscle. Non-empty lines that match no
// label continue the last origin, insertion or function field. Lines
// before the first muscle that are not group headings are ignored.
func Parse(r io.Reader) ([]Muscle, error) {
	var (
		muscles []Muscle
		group   string
		cur     *draft
		field   fieldKind
	)

	flush := func() {
		if cur != nil && cur.name != "" {
			muscles = append(muscles, cur.muscle(len(muscles)+1))
		}
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if g, ok := cutAny(line, groupLabels); ok {
			group = g
			continue
		}

		if m := musclePattern.FindStringSubmatch(line); m != nil {
			flush()
			cur = &draft{name: strings.TrimSpace(m[1]), group: group}
			field = fieldNone
			continue
		}

		if kind, value, ok := matchField(line); ok {
			if cur == nil {
				continue
			}
			b := cur.builder(kind)
			b.Reset()
			b.WriteString(value)
			// The Latin name is single-line; it does not take over continuation.
			if kind != fieldLatin {
				field = kind
			}
			continue
		}

		if cur != nil && field != fieldNone {
			b := cur.builder(field)
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	flush()
	return muscles, nil
}

func cutAny(line string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(line, p); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

func matchField(line string) (fieldKind, string, bool) {
	for _, l := range fieldLabels {
		if rest, ok := strings.CutPrefix(line, l.prefix); ok {
			return l.kind, strings.TrimSpace(rest), true
		}
	}
	return fieldNone, "", false
}
