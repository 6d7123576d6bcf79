package balance

import "errors"

// Kind is the closed set of transaction kinds. Anything else is
// rejected at the boundary as a validation error.
type Kind string

const (
	KindDebit  Kind = "DEBIT"
	KindCredit Kind = "CREDIT"
)

func (k Kind) Valid() bool {
	return k == KindDebit || k == KindCredit
}

// Signed returns the amount with the sign implied by the kind:
// credits add funds, debits drain them.
func (k Kind) Signed(amount int64) int64 {
	if k == KindDebit {
		return -amount
	}
	return amount
}

// Direction tells the mutator whether a transaction is being created
// or its effect reversed on delete.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

var (
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrUnknownKind       = errors.New("unknown transaction kind")
	ErrUserNotFound      = errors.New("user not found")
	ErrCategoryNotFound  = errors.New("category not found or unauthorized")
)

// Delta computes the signed balance change a transaction implies for
// both the owning user and the category. The two always move together.
//
//	CREDIT forward  +amount    DEBIT forward  -amount
//	CREDIT reverse  -amount    DEBIT reverse  +amount
func Delta(kind Kind, direction Direction, amount int64) (int64, error) {
	if !kind.Valid() {
		return 0, ErrUnknownKind
	}

	delta := kind.Signed(amount)
	if direction == Reverse {
		delta = -delta
	}
	return delta, nil
}
