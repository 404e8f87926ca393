package tokens

import (
	"testing"
	"time"

	"github.com/crediflow/crediflow/config"
	"github.com/crediflow/crediflow/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testIssuer(t *testing.T) *TokenIssuer {
	return NewIssuer(zaptest.NewLogger(t), &config.JWTConfiguration{
		Algorithm:          "HS256",
		Issuer:             "crediflow",
		Audience:           []string{"crediflow"},
		Expiry:             time.Minute * 5,
		RefreshTokenExpiry: time.Hour * 24,
		HMACSigningKey:     "a-signing-key-thats-long-enough!",
	})
}

func TestIssueAccessTokenRoundtrip(t *testing.T) {
	issuer := testIssuer(t)
	signedIn := &user.SignedInUser{
		ID:        uuid.New(),
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Review",
		Role:      "reviewer",
	}

	token, err := issuer.IssueAccessToken(signedIn)
	require.NoError(t, err)
	raw, err := issuer.Sign(token)
	require.NoError(t, err)

	parsed, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, signedIn.ID.String(), parsed.Subject())
	email, _ := parsed.Get(ClaimEmail)
	assert.Equal(t, "ada@example.com", email)
	role, _ := parsed.Get(ClaimRole)
	assert.Equal(t, "reviewer", role)
	use, _ := parsed.Get(ClaimTokenUse)
	assert.Equal(t, TokenUseAccess, use)
}

func TestRefreshTokenCarriesRefreshUse(t *testing.T) {
	issuer := testIssuer(t)
	token, err := issuer.IssueRefreshToken(&user.SignedInUser{ID: uuid.New()})
	require.NoError(t, err)
	use, _ := token.Get(ClaimTokenUse)
	assert.Equal(t, TokenUseRefresh, use)
	assert.True(t, token.Expiration().After(time.Now().Add(time.Hour*23)))
}
