package fee

// Context carries the optional inputs that adjust a calculation.
// Matching against adjustment tables is case-insensitive.
type Context struct {
	UserType    string
	Category    string
	CourseLevel string
}

// Adjustment records one applied multiplicative factor.
type Adjustment struct {
	Key    string  `json:"key"`
	Factor float64 `json:"factor"`
}

// Breakdown records how a fee was derived.
type Breakdown struct {
	BaseFee     float64     `json:"baseFee"`
	UserType    *Adjustment `json:"userType,omitempty"`
	Category    *Adjustment `json:"category,omitempty"`
	CourseLevel *Adjustment `json:"courseLevel,omitempty"`
}

// Result is the outcome of one calculation. It has no persistent identity.
//
// NetAmount is what the recipient keeps for subtractive fee types
// (commission, course platform fee); TotalAmount is what the payer owes for
// additive types (transaction, currency conversion). Both are derived from
// the rounded fee.
type Result struct {
	BaseAmount  float64   `json:"baseAmount"`
	FeeAmount   float64   `json:"feeAmount"`
	FeeRate     float64   `json:"feeRate"`
	NetAmount   float64   `json:"netAmount"`
	TotalAmount float64   `json:"totalAmount"`
	Currency    string    `json:"currency"`
	Breakdown   Breakdown `json:"breakdown"`
}

// Tier is one bracket of a tiered fee table. Rate is a percentage of the
// base amount. Max <= 0 means the bracket is unbounded.
type Tier struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Rate float64 `json:"rate"`
}

// RecordInput describes one fee application to persist.
type RecordInput struct {
	TransactionID string
	UserID        uint
	FeeType       string
	BaseAmount    float64
	FeeAmount     float64
	FeeRate       float64
	Currency      string
	Description   string
	Metadata      map[string]interface{}
}
