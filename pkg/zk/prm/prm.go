package zkprm

import (
	"crypto/rand"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/quorumsig/gg20/internal/params"
	"github.com/quorumsig/gg20/pkg/hash"
	"github.com/quorumsig/gg20/pkg/math/arith"
	"github.com/quorumsig/gg20/pkg/math/sample"
	"github.com/quorumsig/gg20/pkg/pedersen"
	"github.com/quorumsig/gg20/pkg/pool"
)

type (
	Public struct {
		N    *saferith.Modulus
		S, T *saferith.Nat
	}
	Private struct {
		Lambda, Phi, P, Q *saferith.Nat
	}
)

type Proof struct {
	As, Zs [params.StatParam]*saferith.Nat
}

func (p *Proof) IsValid(public Public) bool {
	if p == nil {
		return false
	}
	if !arith.IsValidNatModN(public.N, p.As[:]...) {
		return false
	}
	if !arith.IsValidNatModN(public.N, p.Zs[:]...) {
		return false
	}
	return true
}

// NewProof generates a proof that:
// s = t^lambda (mod N).
func NewProof(private Private, hash *hash.Hash, public Public, pl *pool.Pool) *Proof {
	lambda := private.Lambda
	phiMod := saferith.ModulusFromNat(private.Phi)
	// Exponentiation mod N is done with the CRT over the factors.
	n := arith.ModulusFromFactors(private.P, private.Q)

	var as [params.StatParam]*saferith.Nat
	for i := range as {
		// aᵢ ∈ mod ϕ(N)
		as[i] = sample.ModN(rand.Reader, phiMod)
	}

	var As [params.StatParam]*saferith.Nat
	pl.Parallelize(params.StatParam, func(i int) interface{} {
		// Aᵢ = tᵃⁱ (mod N)
		As[i] = n.Exp(public.T, as[i])
		return nil
	})

	es, _ := challenge(hash, public, As)

	var Zs [params.StatParam]*saferith.Nat
	for i := range Zs {
		z := as[i]
		// The challenge is public, so branching is ok
		if es[i] {
			z.ModAdd(z, lambda, phiMod)
		}
		Zs[i] = z
	}

	return &Proof{
		As: As,
		Zs: Zs,
	}
}

func (p *Proof) Verify(public Public, hash *hash.Hash, pl *pool.Pool) bool {
	if p == nil {
		return false
	}
	if err := pedersen.ValidateParameters(public.N, public.S, public.T); err != nil {
		return false
	}
	if !p.IsValid(public) {
		return false
	}

	es, err := challenge(hash, public, p.As)
	if err != nil {
		return false
	}

	n, s, t := arith.ModulusFromN(public.N), public.S, public.T
	one := new(saferith.Nat).SetUint64(1)
	verifications := pl.Parallelize(params.StatParam, func(i int) interface{} {
		a, z := p.As[i], p.Zs[i]

		if a.Eq(one) == 1 {
			return false
		}

		// lhs = tᶻ (mod N)
		lhs := n.Exp(t, z)
		rhs := a
		if es[i] {
			// rhs = aᵢ•s (mod N)
			rhs = new(saferith.Nat).ModMul(a, s, n.Modulus)
		}
		return lhs.Eq(rhs) == 1
	})
	for i := 0; i < len(verifications); i++ {
		if !verifications[i].(bool) {
			return false
		}
	}
	return true
}

func challenge(hash *hash.Hash, public Public, A [params.StatParam]*saferith.Nat) (es []bool, err error) {
	err = hash.WriteAny(public.N, public.S, public.T)
	for _, a := range A {
		if err == nil {
			err = hash.WriteAny(a)
		}
	}

	tmpBytes := make([]byte, params.StatParam)
	_, _ = io.ReadFull(hash.Digest(), tmpBytes)

	es = make([]bool, params.StatParam)
	for i := range es {
		es[i] = (tmpBytes[i] & 1) == 1
	}

	return
}
