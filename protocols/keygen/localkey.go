package keygen

import (
	"errors"
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"

	"github.com/quorumsig/gg20/pkg/math/curve"
	"github.com/quorumsig/gg20/pkg/math/polynomial"
	"github.com/quorumsig/gg20/pkg/paillier"
	"github.com/quorumsig/gg20/pkg/party"
	"github.com/quorumsig/gg20/pkg/pedersen"
)

// LocalKey is party i's output of a successful key generation.
//
// The joint ECDSA secret Σⱼ uⱼ is never materialized anywhere; any t+1
// parties can produce signatures under PublicKey using their shares.
type LocalKey struct {
	// Group is the elliptic curve the key lives on.
	Group curve.Curve
	// ID is this party's label in [1, n].
	ID party.ID
	// Threshold is the degree t of the sharing polynomial. t+1 shares
	// reconstruct the secret.
	Threshold int
	// PaillierSecret is the decryption key matching PaillierPublic[ID-1].
	PaillierSecret *paillier.SecretKey
	// SecretShare = xᵢ = Σⱼ fⱼ(i) is this party's share of the secret key.
	SecretShare curve.Scalar
	// PublicShares[j-1] = Xⱼ = xⱼ•G for every party j.
	PublicShares []curve.Point
	// PaillierPublic[j-1] is the Paillier encryption key of party j.
	PaillierPublic []*paillier.PublicKey
	// Pedersen[j-1] holds the ring-Pedersen parameters (Nⱼ, sⱼ, tⱼ) of
	// party j, consumed by the range proofs of the signing phases.
	Pedersen []*pedersen.Parameters
	// VSSPolynomial = Fᵢ(X), this party's own exponent polynomial.
	VSSPolynomial *polynomial.Exponent
	// PublicKey = Σⱼ yⱼ is the joint ECDSA public key.
	PublicKey curve.Point
}

// EmptyLocalKey returns a LocalKey with the group set, ready to be
// unmarshalled into.
func EmptyLocalKey(group curve.Curve) *LocalKey {
	return &LocalKey{Group: group}
}

// Count returns the number of parties n in the session.
func (k *LocalKey) Count() int { return len(k.PublicShares) }

// PublicShare returns Xᵢ, this party's own public share.
func (k *LocalKey) PublicShare() curve.Point { return k.PublicShares[k.ID-1] }

// Validate checks the internal consistency of the key material. It should
// be called on any key loaded from untrusted storage.
func (k *LocalKey) Validate() error {
	if k.Group == nil {
		return errors.New("localkey: missing group")
	}
	n := len(k.PublicShares)
	if n < 2 {
		return fmt.Errorf("localkey: invalid party count %d", n)
	}
	if len(k.PaillierPublic) != n || len(k.Pedersen) != n {
		return errors.New("localkey: inconsistent party count")
	}
	if k.ID == party.Broadcast || int(k.ID) > n {
		return fmt.Errorf("localkey: party %d outside of session", k.ID)
	}
	if k.Threshold < 1 || k.Threshold > n-1 {
		return fmt.Errorf("localkey: invalid threshold %d for %d parties", k.Threshold, n)
	}
	if k.PaillierSecret == nil || k.SecretShare == nil || k.PublicKey == nil || k.VSSPolynomial == nil {
		return errors.New("localkey: missing fields")
	}
	if k.VSSPolynomial.Degree() != k.Threshold {
		return errors.New("localkey: polynomial degree does not match threshold")
	}
	for j := 0; j < n; j++ {
		if k.PublicShares[j] == nil || k.PaillierPublic[j] == nil || k.Pedersen[j] == nil {
			return fmt.Errorf("localkey: missing data for party %d", j+1)
		}
		ped := k.Pedersen[j]
		if err := pedersen.ValidateParameters(ped.N(), ped.S(), ped.T()); err != nil {
			return fmt.Errorf("localkey: pedersen parameters of party %d: %w", j+1, err)
		}
		if ped.N().Nat().Eq(k.PaillierPublic[j].N().Nat()) != 1 {
			return fmt.Errorf("localkey: pedersen modulus of party %d does not match paillier", j+1)
		}
	}
	// The first t+1 shares must reconstruct the public key.
	reconstructed := k.Group.NewPoint()
	for id, c := range polynomial.Lagrange(k.Group, party.RangeN(k.Threshold+1)) {
		reconstructed = reconstructed.Add(c.Act(k.PublicShares[id-1]))
	}
	if !reconstructed.Equal(k.PublicKey) {
		return errors.New("localkey: public shares do not reconstruct the public key")
	}
	if !k.PaillierSecret.PublicKey.Equal(k.PaillierPublic[k.ID-1]) {
		return errors.New("localkey: paillier secret does not match public key")
	}
	if !k.SecretShare.ActOnBase().Equal(k.PublicShares[k.ID-1]) {
		return errors.New("localkey: secret share does not match public share")
	}
	return nil
}

type localKeyMarshal struct {
	ID            party.ID
	Threshold     int
	P, Q          *saferith.Nat
	SecretShare   cbor.RawMessage
	VSSPolynomial cbor.RawMessage
	PublicKey     cbor.RawMessage
	Public        []localKeyPublic
}

type localKeyPublic struct {
	X    cbor.RawMessage
	N    *saferith.Modulus
	S, T *saferith.Nat
}

// MarshalBinary serializes the key, including the Paillier primes and the
// secret share. The result must be treated as secret key material.
func (k *LocalKey) MarshalBinary() ([]byte, error) {
	secretShare, err := cbor.Marshal(k.SecretShare)
	if err != nil {
		return nil, err
	}
	vssPolynomial, err := cbor.Marshal(k.VSSPolynomial)
	if err != nil {
		return nil, err
	}
	publicKey, err := cbor.Marshal(k.PublicKey)
	if err != nil {
		return nil, err
	}
	public := make([]localKeyPublic, len(k.PublicShares))
	for j := range public {
		x, err := cbor.Marshal(k.PublicShares[j])
		if err != nil {
			return nil, err
		}
		public[j] = localKeyPublic{
			X: x,
			N: k.PaillierPublic[j].N(),
			S: k.Pedersen[j].S(),
			T: k.Pedersen[j].T(),
		}
	}
	return cbor.Marshal(localKeyMarshal{
		ID:            k.ID,
		Threshold:     k.Threshold,
		P:             k.PaillierSecret.P(),
		Q:             k.PaillierSecret.Q(),
		SecretShare:   secretShare,
		VSSPolynomial: vssPolynomial,
		PublicKey:     publicKey,
		Public:        public,
	})
}

// UnmarshalBinary expects k to come from EmptyLocalKey so that the group
// is known. All parameters are revalidated; the Paillier keys are rebuilt
// from the stored primes.
func (k *LocalKey) UnmarshalBinary(data []byte) error {
	if k.Group == nil {
		return errors.New("localkey: unmarshal target must be initialized with EmptyLocalKey")
	}
	var km localKeyMarshal
	if err := cbor.Unmarshal(data, &km); err != nil {
		return err
	}
	if err := paillier.ValidatePrime(km.P); err != nil {
		return fmt.Errorf("localkey: prime p: %w", err)
	}
	if err := paillier.ValidatePrime(km.Q); err != nil {
		return fmt.Errorf("localkey: prime q: %w", err)
	}
	sk := paillier.NewSecretKeyFromPrimes(km.P, km.Q)

	secretShare := k.Group.NewScalar()
	if err := cbor.Unmarshal(km.SecretShare, secretShare); err != nil {
		return err
	}
	vssPolynomial := polynomial.EmptyExponent(k.Group)
	if err := cbor.Unmarshal(km.VSSPolynomial, vssPolynomial); err != nil {
		return err
	}
	publicKey := k.Group.NewPoint()
	if err := cbor.Unmarshal(km.PublicKey, publicKey); err != nil {
		return err
	}

	n := len(km.Public)
	publicShares := make([]curve.Point, n)
	paillierPublic := make([]*paillier.PublicKey, n)
	pedersens := make([]*pedersen.Parameters, n)
	for j, pub := range km.Public {
		x := k.Group.NewPoint()
		if err := cbor.Unmarshal(pub.X, x); err != nil {
			return err
		}
		if err := paillier.ValidateN(pub.N); err != nil {
			return fmt.Errorf("localkey: modulus of party %d: %w", j+1, err)
		}
		if err := pedersen.ValidateParameters(pub.N, pub.S, pub.T); err != nil {
			return fmt.Errorf("localkey: pedersen parameters of party %d: %w", j+1, err)
		}
		publicShares[j] = x
		paillierPublic[j] = paillier.NewPublicKey(pub.N)
		pedersens[j] = pedersen.New(paillierPublic[j].Modulus(), pub.S, pub.T)
	}

	k.ID = km.ID
	k.Threshold = km.Threshold
	k.PaillierSecret = sk
	k.SecretShare = secretShare
	k.PublicShares = publicShares
	k.PaillierPublic = paillierPublic
	k.Pedersen = pedersens
	k.VSSPolynomial = vssPolynomial
	k.PublicKey = publicKey

	return k.Validate()
}
