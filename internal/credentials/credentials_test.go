package credentials_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/isometry/token-monitor/internal/credentials"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets map[string]string

func (f fakeSecrets) GetSecret(_ context.Context, key string, _ bool) (string, error) {
	v, ok := f[key]
	if !ok {
		return "", errors.New("ParameterNotFound")
	}
	return v, nil
}

func TestNewProvider(t *testing.T) {
	testCases := []struct {
		Name  string
		Mode  string
		Opts  []credentials.Option
		Error string
	}{
		{Name: "none", Mode: "none"},
		{Name: "empty_mode", Mode: ""},
		{Name: "token", Mode: "token", Opts: []credentials.Option{credentials.WithToken("t")}},
		{Name: "token_missing", Mode: "token", Error: "missing [API_TOKEN]"},
		{Name: "ssm", Mode: "SSM", Opts: []credentials.Option{credentials.WithSSMKey("/k"), credentials.WithSecrets(fakeSecrets{})}},
		{Name: "ssm_missing_key", Mode: "ssm", Opts: []credentials.Option{credentials.WithSecrets(fakeSecrets{})}, Error: "missing SSM parameter key"},
		{Name: "ssm_missing_store", Mode: "ssm", Opts: []credentials.Option{credentials.WithSSMKey("/k")}, Error: "missing secrets store"},
		{Name: "unsupported", Mode: "vault", Error: "unsupported auth mode: vault"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := credentials.NewProvider(tc.Mode, tc.Opts...)
			if tc.Error != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.Error)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestHTTPClientAuthorization(t *testing.T) {
	testCases := []struct {
		Name     string
		Mode     string
		Opts     []credentials.Option
		Expected string
		Error    bool
	}{
		{Name: "none", Mode: "none", Expected: ""},
		{Name: "token", Mode: "token", Opts: []credentials.Option{credentials.WithToken("abc")}, Expected: "Bearer abc"},
		{
			Name:     "ssm_raw",
			Mode:     "ssm",
			Opts:     []credentials.Option{credentials.WithSSMKey("/raw"), credentials.WithSecrets(fakeSecrets{"/raw": "xyz\n"})},
			Expected: "Bearer xyz",
		},
		{
			Name:     "ssm_json",
			Mode:     "ssm",
			Opts:     []credentials.Option{credentials.WithSSMKey("/json"), credentials.WithSecrets(fakeSecrets{"/json": `{"token":"from-json"}`})},
			Expected: "Bearer from-json",
		},
		{
			Name:  "ssm_json_without_token",
			Mode:  "ssm",
			Opts:  []credentials.Option{credentials.WithSSMKey("/json"), credentials.WithSecrets(fakeSecrets{"/json": `{"app_id":1}`})},
			Error: true,
		},
		{
			Name:  "ssm_not_found",
			Mode:  "ssm",
			Opts:  []credentials.Option{credentials.WithSSMKey("/missing"), credentials.WithSecrets(fakeSecrets{})},
			Error: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			got := make(chan string, 1)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got <- r.Header.Get("Authorization")
				w.WriteHeader(http.StatusNoContent)
			}))
			defer srv.Close()

			provider, err := credentials.NewProvider(tc.Mode, tc.Opts...)
			require.NoError(t, err)
			client, err := provider.HTTPClient(context.Background())
			if tc.Error {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			resp, err := client.Post(srv.URL, "application/json", strings.NewReader(`{"key":"value"}`))
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, http.StatusNoContent, resp.StatusCode)
			assert.Equal(t, tc.Expected, <-got)
		})
	}
}
