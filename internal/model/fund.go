package model

// Fund is a single income or expense entry. Negative amounts are expenses.
// Class is the entry type (e.g. "food"), Source the account it moved through.
type Fund struct {
	ID        int64   `json:"id,omitempty" yaml:"id,omitempty"`
	Amount    float64 `json:"amount" yaml:"amount"`
	Name      string  `json:"name" yaml:"name"`
	Class     string  `json:"class" yaml:"class"`
	Timestamp int64   `json:"timestamp" yaml:"timestamp"`
	Source    string  `json:"source" yaml:"source"`
}

// SumInfo is a named aggregate, e.g. the total spent per fund class.
type SumInfo struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}
