package meta

import (
	"net/http"
	"testing"

	"github.com/crediflow/crediflow/config"
	"github.com/crediflow/crediflow/tokens"
	"github.com/steinfletcher/apitest"
	"go.uber.org/zap"
)

func TestDiscoveryEndpoint(t *testing.T) {
	bcfg := &config.BehaviourConfiguration{
		Name:          "crediflow",
		ServiceDomain: "http://example.com",
	}
	tcfg := &config.JWTConfiguration{
		Issuer:         "example",
		Algorithm:      "HS512",
		HMACSigningKey: "ABCDEF",
	}
	issuer := tokens.NewIssuer(zap.NewNop(), tcfg)
	m := NewMetaRessource(zap.NewNop(), bcfg, issuer)
	apitest.New(). // configuration
			HandlerFunc(m.serviceConfiguration).
			Get("/crediflow-configuration"). // request
			Expect(t).                       // expectations
			Body(`{"service_name":"crediflow","issuer":"example","jwks_uri":"http://example.com/.well-known/jwks","signin_endpoint":"http://example.com/account/signin","refresh_endpoint":"http://example.com/account/refresh","recovery_endpoint":"http://example.com/account/recover","personal_intake_endpoint":"http://example.com/applications/personal","business_intake_endpoint":"http://example.com/applications/business","supported_statuses":["PENDING","IN_REVIEW","APPROVED","REJECTED"]}`).
			Status(http.StatusOK).
			End()
}
