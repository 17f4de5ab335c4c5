package model

// Debt is an outstanding liability and its repayment progress.
type Debt struct {
	ID            int64   `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string  `json:"name" yaml:"name"`
	Amount        float64 `json:"amount" yaml:"amount"`
	Repayment     float64 `json:"repayment" yaml:"repayment"`
	LastTimestamp int64   `json:"last_timestamp" yaml:"last_timestamp"`
}

// Property is an asset account. Its amount includes every fund whose source
// matches the property name.
type Property struct {
	ID     int64   `json:"id,omitempty" yaml:"id,omitempty"`
	Name   string  `json:"name" yaml:"name"`
	Amount float64 `json:"amount" yaml:"amount"`
}
