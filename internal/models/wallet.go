package models

// TransactionType is the direction of a wallet transaction.
type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// TransactionReason explains why money moved.
type TransactionReason string

const (
	ReasonRecharge    TransactionReason = "recharge"
	ReasonLoadPayment TransactionReason = "load_payment"
	ReasonFuel        TransactionReason = "fuel"
	ReasonRefund      TransactionReason = "refund"
	ReasonOther       TransactionReason = "other"
)

// WalletTransaction is a recorded credit or debit.
type WalletTransaction struct {
	UserID    *string           `bson:"user_id" json:"user_id"`
	VehicleID *string           `bson:"vehicle_id" json:"vehicle_id"`
	Amount    *float64          `bson:"amount" json:"amount" validate:"required"`
	Type      TransactionType   `bson:"type" json:"type" validate:"required,oneof=credit debit"`
	Reason    TransactionReason `bson:"reason" json:"reason" validate:"omitempty,oneof=recharge load_payment fuel refund other"`
}

// ApplyDefaults fills the fields that have a schema default.
func (w *WalletTransaction) ApplyDefaults() {
	if w.Reason == "" {
		w.Reason = ReasonOther
	}
}

// WalletBalance is derived on read from the recorded transactions.
type WalletBalance struct {
	VehicleID    string  `json:"vehicle_id,omitempty"`
	UserID       string  `json:"user_id,omitempty"`
	Credits      float64 `json:"credits"`
	Debits       float64 `json:"debits"`
	Balance      float64 `json:"balance"`
	Transactions int64   `json:"transactions"`
}
