package roster

import (
	"strings"

	"github.com/EricksonJ-beep/CadottFootballAttendanceTracker/internal/domain/athlete"
)

// OpKind identifies the write a reconciliation step requires.
type OpKind int

const (
	// OpCreate adds a new athlete and back-fills its attendance.
	OpCreate OpKind = iota
	// OpUpdateGradeJersey rewrites grade and jersey of an athlete matched by name and grade.
	OpUpdateGradeJersey
	// OpUpdateNameGrade rewrites name and grade of an athlete matched by jersey.
	OpUpdateNameGrade
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpUpdateGradeJersey:
		return "update_grade_jersey"
	case OpUpdateNameGrade:
		return "update_name_grade"
	}
	return "unknown"
}

// Op is one write in a reconciliation plan.
type Op struct {
	Kind      OpKind
	AthleteID string // empty for OpCreate
	Row       Row
}

// Apply copies the fields this op owns from its row onto a.
// Fields outside the op's scope are left untouched.
func (op Op) Apply(a *athlete.Athlete) {
	switch op.Kind {
	case OpUpdateGradeJersey:
		a.Grade = op.Row.Grade
		a.JerseyNumber = op.Row.JerseyNumber
	case OpUpdateNameGrade:
		a.FullName = op.Row.FullName
		a.Grade = op.Row.Grade
	case OpCreate:
		a.FullName = op.Row.FullName
		a.Grade = op.Row.Grade
		a.JerseyNumber = op.Row.JerseyNumber
	}
}

// Plan is the ordered list of writes that converges a roster with an import batch.
type Plan struct {
	Ops        []Op
	Duplicates int // rows repeating an earlier row of the batch
	Unchanged  int // rows matching an athlete whose values already agree
}

// Creates counts OpCreate entries.
func (p Plan) Creates() int {
	n := 0
	for _, op := range p.Ops {
		if op.Kind == OpCreate {
			n++
		}
	}
	return n
}

// Updates counts update entries.
func (p Plan) Updates() int {
	return len(p.Ops) - p.Creates()
}

// Reconcile matches rows against the existing roster and returns the writes needed.
//
// Rows are processed in order. A row repeating the normalized (name, grade, jersey) of an
// earlier row is skipped. Otherwise a name+grade match wins over a jersey match, and a row
// matching neither becomes a create. The lookup maps reflect existing as passed in; writes
// planned earlier in the same batch do not feed later lookups.
//
// PRE: existing belongs to a single team
// POST: re-running with the same rows against the converged roster yields no ops
func Reconcile(rows []Row, existing []athlete.Athlete) Plan {
	byNameGrade := make(map[string]athlete.Athlete, len(existing))
	byJersey := make(map[string]athlete.Athlete, len(existing))
	for _, a := range existing {
		byNameGrade[nameGradeKey(a.FullName, a.Grade)] = a
		byJersey[normalize(a.JerseyNumber)] = a
	}

	var plan Plan
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		key := nameGradeKey(row.FullName, row.Grade) + "|" + normalize(row.JerseyNumber)
		if seen[key] {
			plan.Duplicates++
			continue
		}
		seen[key] = true

		if match, ok := byNameGrade[nameGradeKey(row.FullName, row.Grade)]; ok {
			if match.Grade != row.Grade || match.JerseyNumber != row.JerseyNumber {
				plan.Ops = append(plan.Ops, Op{Kind: OpUpdateGradeJersey, AthleteID: match.ID, Row: row})
			} else {
				plan.Unchanged++
			}
			continue
		}

		if match, ok := byJersey[normalize(row.JerseyNumber)]; ok {
			if match.FullName != row.FullName || match.Grade != row.Grade {
				plan.Ops = append(plan.Ops, Op{Kind: OpUpdateNameGrade, AthleteID: match.ID, Row: row})
			} else {
				plan.Unchanged++
			}
			continue
		}

		plan.Ops = append(plan.Ops, Op{Kind: OpCreate, Row: row})
	}
	return plan
}

// normalize trims and case-folds a value for matching only.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func nameGradeKey(name, grade string) string {
	return normalize(name) + "|" + normalize(grade)
}
