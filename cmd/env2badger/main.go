package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/betbot/gorh/pkg/secretstore"
)

func main() {
	var (
		inPath    = flag.String("in", ".env", "input .env file path")
		dbPath    = flag.String("badger", getenv("RH_SECRET_STORE_PATH", "data/secrets.badger"), "badger secrets db path")
		secretKey = flag.String("secret-key", getenv("RH_SECRET_STORE_KEY", ""), "badger encryption key (32 bytes base64/hex)")
		all       = flag.Bool("all", false, "import every variable, not only RH_* credentials")
	)
	flag.Parse()

	keyBytes, err := secretstore.ParseKey(*secretKey)
	if err != nil {
		fatal(err)
	}
	if keyBytes == nil {
		fatal(fmt.Errorf("secret key is required: set RH_SECRET_STORE_KEY or pass -secret-key"))
	}

	kv, err := godotenv.Read(*inPath)
	if err != nil {
		fatal(err)
	}
	kv = selectKeys(kv, *all)
	if len(kv) == 0 {
		fatal(fmt.Errorf("%s has no credentials (%s)", *inPath, strings.Join(secretstore.CredentialKeys, ", ")))
	}

	keys, err := writeKeys(secretstore.OpenOptions{
		Path:          *dbPath,
		EncryptionKey: keyBytes,
	}, kv)
	if err != nil {
		fatal(err)
	}

	fmt.Fprintf(os.Stderr, "imported %d keys into %s: %s\n", len(keys), *dbPath, strings.Join(keys, ", "))
}

// writeKeys stores kv in sorted key order. The store is closed before
// returning, also on failure.
func writeKeys(opts secretstore.OpenOptions, kv map[string]string) (keys []string, err error) {
	ss, err := secretstore.Open(opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := ss.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	keys = make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := ss.SetString(k, kv[k]); err != nil {
			return nil, fmt.Errorf("store %s: %w", k, err)
		}
	}
	return keys, nil
}

// selectKeys credential variables of kv, or all non-empty ones.
func selectKeys(kv map[string]string, all bool) map[string]string {
	out := make(map[string]string)
	if all {
		for k, v := range kv {
			if strings.TrimSpace(v) != "" {
				out[k] = v
			}
		}
		return out
	}
	for _, k := range secretstore.CredentialKeys {
		if v := strings.TrimSpace(kv[k]); v != "" {
			out[k] = v
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err.Error())
	os.Exit(1)
}
