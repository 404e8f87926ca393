package meta

import "github.com/lestrrat-go/jwx/v2/jwk"

// JwkSupplier is the slice of the token issuer the discovery endpoints
// need.
type JwkSupplier interface {
	AsPublicOnlyJWKSet() (jwk.Set, error)
	Alg() string
	Issuer() string
}
