package helper

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// PrettyPrint dumps v as indented JSON to stdout. CLI output only.
func PrettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Warn().Err(err).Msg("pretty print failed")
		return
	}
	fmt.Println(string(b))
}

// CreateFolder makes dir (and parents) if it does not exist yet.
func CreateFolder(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
