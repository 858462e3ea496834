package domain

// TransactionType classifies the direction or nature of a money movement.
type TransactionType string

const (
	TransactionTypeCashIn     TransactionType = "CASHIN"
	TransactionTypeCashOut    TransactionType = "CASHOUT"
	TransactionTypeCredit     TransactionType = "CREDIT"
	TransactionTypeInvestment TransactionType = "INVESTMENT"
)

// TransactionTypes lists every accepted TransactionType.
var TransactionTypes = []TransactionType{
	TransactionTypeCashIn,
	TransactionTypeCashOut,
	TransactionTypeCredit,
	TransactionTypeInvestment,
}

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeCashIn, TransactionTypeCashOut, TransactionTypeCredit, TransactionTypeInvestment:
		return true
	}
	return false
}

// TransactionMethod is the payment instrument used.
type TransactionMethod string

const (
	TransactionMethodCash   TransactionMethod = "CASH"
	TransactionMethodCredit TransactionMethod = "CREDIT"
	TransactionMethodDebit  TransactionMethod = "DEBIT"
	TransactionMethodSlip   TransactionMethod = "SLIP"
	TransactionMethodTED    TransactionMethod = "TED"
)

// TransactionMethods lists every accepted TransactionMethod.
var TransactionMethods = []TransactionMethod{
	TransactionMethodCash,
	TransactionMethodCredit,
	TransactionMethodDebit,
	TransactionMethodSlip,
	TransactionMethodTED,
}

func (m TransactionMethod) IsValid() bool {
	switch m {
	case TransactionMethodCash, TransactionMethodCredit, TransactionMethodDebit, TransactionMethodSlip, TransactionMethodTED:
		return true
	}
	return false
}

// TransactionFrequency describes how predictable a transaction is.
type TransactionFrequency string

const (
	TransactionFrequencyFixed     TransactionFrequency = "FIXED"
	TransactionFrequencyVariable  TransactionFrequency = "VARIABLE"
	TransactionFrequencyUnplanned TransactionFrequency = "UNPLANNED"
)

// TransactionFrequencies lists every accepted TransactionFrequency.
var TransactionFrequencies = []TransactionFrequency{
	TransactionFrequencyFixed,
	TransactionFrequencyVariable,
	TransactionFrequencyUnplanned,
}

func (f TransactionFrequency) IsValid() bool {
	switch f {
	case TransactionFrequencyFixed, TransactionFrequencyVariable, TransactionFrequencyUnplanned:
		return true
	}
	return false
}
