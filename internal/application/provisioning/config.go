package provisioning

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

const dateLayout = "2006-01-02"

// decodeConfig descodifica un config_b64 (JSON codificado en base64) en dest.
func decodeConfig(configB64 string, dest any) error {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(configB64))
	if err != nil {
		return fmt.Errorf("decode config_b64: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("parse config JSON: %w", err)
	}
	return nil
}
