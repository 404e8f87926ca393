package meta

import "net/http"

type serviceMetaData struct {
	ServiceName       string   `json:"service_name"`
	Issuer            string   `json:"issuer"`
	JWKSUri           string   `json:"jwks_uri"`
	SignInEndpoint    string   `json:"signin_endpoint"`
	RefreshEndpoint   string   `json:"refresh_endpoint"`
	RecoveryEndpoint  string   `json:"recovery_endpoint"`
	PersonalIntake    string   `json:"personal_intake_endpoint"`
	BusinessIntake    string   `json:"business_intake_endpoint"`
	SupportedStatuses []string `json:"supported_statuses"`
}

func (*serviceMetaData) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}
