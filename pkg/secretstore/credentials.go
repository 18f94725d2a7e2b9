package secretstore

import (
	"strings"

	"github.com/betbot/gorh/rhcrypto/types"
)

// Keys under which API credentials are stored. They match the environment
// variable names so a .env file imports one to one.
const (
	KeyAPIKey     = "RH_API_KEY"
	KeyPrivateKey = "RH_PRIVATE_KEY"
	KeyPublicKey  = "RH_PUBLIC_KEY"
)

// CredentialKeys every key LoadCredentials reads.
var CredentialKeys = []string{KeyAPIKey, KeyPrivateKey, KeyPublicKey}

// LoadCredentials reads the stored credentials. Missing keys stay empty.
func (s *Store) LoadCredentials() (types.Credentials, error) {
	var creds types.Credentials
	for key, dst := range map[string]*string{
		KeyAPIKey:     &creds.APIKey,
		KeyPrivateKey: &creds.PrivateKey,
		KeyPublicKey:  &creds.PublicKey,
	} {
		v, _, err := s.GetString(key)
		if err != nil {
			return types.Credentials{}, err
		}
		*dst = strings.TrimSpace(v)
	}
	return creds, nil
}

// SaveCredentials stores the non-empty fields of creds.
func (s *Store) SaveCredentials(creds types.Credentials) error {
	for _, kv := range [][2]string{
		{KeyAPIKey, creds.APIKey},
		{KeyPrivateKey, creds.PrivateKey},
		{KeyPublicKey, creds.PublicKey},
	} {
		if strings.TrimSpace(kv[1]) == "" {
			continue
		}
		if err := s.SetString(kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}
