package assessor

// rule is one entry of an assessor's rule table: a predicate over features
// computed up front, the weight it contributes and the reason it records.
//
// Rules marked exclusive form a ladder within the assessor: the first
// matching exclusive rule wins and the remaining exclusive rules are
// skipped. Non-exclusive rules always accumulate. This preserves the
// distinction between mutually-exclusive bands (amount) and additive bands
// (velocity).
type rule struct {
	exclusive bool
	weight    int
	reason    string
	match     func() bool
}

func evaluate(rules []rule) Result {
	var res Result
	exclusiveMatched := false
	for _, r := range rules {
		if r.exclusive && exclusiveMatched {
			continue
		}
		if !r.match() {
			continue
		}
		if r.exclusive {
			exclusiveMatched = true
		}
		res.Score += r.weight
		res.Reasons = append(res.Reasons, r.reason)
	}
	return res
}
