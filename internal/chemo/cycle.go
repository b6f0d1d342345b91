package chemo

// CourseDose is the slice of an existing ledger row the carry-forward
// logic needs: which drug got what dose in which cycle.
type CourseDose struct {
	CycleNo    int
	Drug       string
	DoseMg     *float64
	DoseFactor float64
}

// CycleDefault is a dose proposal enriched with the default the UI should
// offer for a specific upcoming cycle.
type CycleDefault struct {
	DoseProposal
	// DefaultDoseMg is the suggested final dose: the absolute dose from
	// the immediately prior cycle when that drug was given then, otherwise
	// the template dose times Factor. Nil when neither source yields a value.
	DefaultDoseMg *float64 `json:"defaultDoseMg"`
	// DefaultFactor seeds the adjustment slider: the factor used for this
	// drug in the prior cycle when present, otherwise Factor as passed in.
	DefaultFactor float64 `json:"defaultFactor"`
	// FromPriorCycle reports which branch produced DefaultDoseMg.
	FromPriorCycle bool `json:"fromPriorCycle"`
}

// ProposeCycle computes the default dose set for cycle cycleNo. Drugs are
// matched against prior rows by exact name string; no normalization.
func ProposeCycle(rules []DoseRule, weightKg, heightCm, factor float64, prior []CourseDose, cycleNo int) ([]CycleDefault, *float64) {
	proposals, bsa := ComputeDoses(rules, weightKg, heightCm)

	defaults := make([]CycleDefault, 0, len(proposals))
	for _, p := range proposals {
		d := CycleDefault{DoseProposal: p, DefaultFactor: factor}

		if prev := findPrior(prior, p.Drug, cycleNo-1); prev != nil && prev.DoseMg != nil {
			v := *prev.DoseMg
			d.DefaultDoseMg = &v
			d.DefaultFactor = prev.DoseFactor
			d.FromPriorCycle = true
		} else if p.DoseMg != nil {
			v := Round1(*p.DoseMg * factor)
			d.DefaultDoseMg = &v
		}
		defaults = append(defaults, d)
	}
	return defaults, bsa
}

func findPrior(prior []CourseDose, drug string, cycleNo int) *CourseDose {
	for i := range prior {
		if prior[i].CycleNo == cycleNo && prior[i].Drug == drug {
			return &prior[i]
		}
	}
	return nil
}

// NextCycleNumber suggests the next cycle number from the existing ledger.
// Advisory only: callers accept any positive cycle number, including gaps
// and out-of-order entries.
func NextCycleNumber(existing []int) int {
	max := 0
	for _, n := range existing {
		if n > max {
			max = n
		}
	}
	return max + 1
}

// CycleEntry is one drug line submitted for recording. BaseDoseMg is the
// template-computed base (post-cap, pre-factor); ManualDoseMg is the
// operator-entered absolute dose for rules whose base is undefined.
type CycleEntry struct {
	Drug         string
	BaseDoseMg   *float64
	Factor       float64
	ManualDoseMg *float64
	Notes        string
}

// CourseRow is a resolved ledger line ready to persist.
type CourseRow struct {
	Drug   string
	DoseMg float64
	Factor float64
	Notes  string
}

// BuildCourseRows resolves submitted entries into final ledger rows:
// final dose = base × factor, or the manual absolute dose with factor 1.0
// when no base exists. An entry with neither is an UnresolvedDoseError and
// nothing is returned (all-or-nothing, no partial cycle).
func BuildCourseRows(entries []CycleEntry) ([]CourseRow, error) {
	rows := make([]CourseRow, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.BaseDoseMg != nil:
			rows = append(rows, CourseRow{
				Drug:   e.Drug,
				DoseMg: Round1(*e.BaseDoseMg * e.Factor),
				Factor: e.Factor,
				Notes:  e.Notes,
			})
		case e.ManualDoseMg != nil:
			rows = append(rows, CourseRow{
				Drug:   e.Drug,
				DoseMg: Round1(*e.ManualDoseMg),
				Factor: 1.0,
				Notes:  e.Notes,
			})
		default:
			return nil, &UnresolvedDoseError{Drug: e.Drug}
		}
	}
	return rows, nil
}
