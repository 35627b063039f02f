package arith

import (
	"math/big"

	"github.com/cronokirby/saferith"
)

// IsValidNatModN checks that ints are all in the range [1, …, N-1] and
// are coprime to N.
func IsValidNatModN(n *saferith.Modulus, ints ...*saferith.Nat) bool {
	for _, i := range ints {
		if i == nil {
			return false
		}
		if _, _, lt := i.CmpMod(n); lt != 1 {
			return false
		}
		if i.IsUnit(n) != 1 {
			return false
		}
	}
	return true
}

// IsValidBigModN checks that ints are all in the range [1, …, N-1] and
// are coprime to N.
func IsValidBigModN(n *big.Int, ints ...*big.Int) bool {
	var gcd big.Int
	one := big.NewInt(1)
	for _, i := range ints {
		if i == nil {
			return false
		}
		if i.Sign() != 1 {
			return false
		}
		if i.Cmp(n) != -1 {
			return false
		}
		gcd.GCD(nil, nil, i, n)
		if gcd.Cmp(one) != 0 {
			return false
		}
	}
	return true
}
