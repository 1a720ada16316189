package models

// ObjectiveJudgment is the typed output of the deferred verdict: whether the
// transcript shows the phishing objective was met.
type ObjectiveJudgment struct {
	ObjectiveMet  bool
	Justification string
}
