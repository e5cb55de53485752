package normalize

// Normalizer translates one provider's raw payload into canonical products.
//
// Normalize returns an error wrapping ErrUnexpectedShape or ErrProviderUnsuccessful
// when the payload as a whole cannot be used. Individual invalid items are
// dropped and logged without failing the payload.
type Normalizer interface {
	ProviderID() string
	Normalize(raw []byte) ([]CanonicalProduct, error)
}
