package auth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ac1714/chirp/internal/shared"
)

// Token is the credential material returned by the provider's implicit
// grant redirect. It is only ever constructed from a callback fragment
// and is treated as opaque beyond the typed accessors.
type Token struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	ExpiresIn   int               `json:"expires_in"`
	Raw         map[string]string `json:"raw"`
}

// ParseFragment builds a [Token] from the portion of a callback URL after
// the '#' separator. The fragment is a set of key=value pairs joined by
// '&'; values are stored verbatim in the raw mapping.
//
// Returns [shared.ErrMalformedCallback] when the fragment is empty or
// carries no access_token key.
func ParseFragment(fragment string) (*Token, error) {
	if fragment == "" {
		return nil, fmt.Errorf("%w: empty fragment", shared.ErrMalformedCallback)
	}

	raw := make(map[string]string)
	for _, pair := range strings.Split(fragment, "&") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		raw[parts[0]] = parts[1]
	}

	accessToken, ok := raw["access_token"]
	if !ok || accessToken == "" {
		return nil, fmt.Errorf("%w: no access_token in fragment", shared.ErrMalformedCallback)
	}

	token := &Token{
		AccessToken: accessToken,
		TokenType:   raw["token_type"],
		Raw:         raw,
	}

	if v, ok := raw["expires_in"]; ok {
		if seconds, err := strconv.Atoi(v); err == nil {
			token.ExpiresIn = seconds
		}
	}

	return token, nil
}
