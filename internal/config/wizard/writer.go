package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sdnfabric/sdnctl/internal/config"
)

// Function variable for dependency injection in tests.
var confirmOverwrite = defaultConfirmOverwrite

// WriteConfig writes the config to a YAML file with a descriptive header.
// An existing file is only replaced after confirmation.
func WriteConfig(cfg *config.Config, outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("refusing to overwrite %s", outputPath)
		}
	}

	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(outputPath))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// generateHeader produces the comment block at the top of generated files.
func generateHeader(outputPath string) string {
	return fmt.Sprintf(`# sdnctl deployment configuration
# Generated by 'sdnctl init' on %s
#
# Add controller, mux and gateway nodes before deploying, e.g.:
#
#   controllers:
#     - host: host1.contoso.local
#       vm_name: nc-01
#       mac_address: 00-1D-D8-B7-1C-01
#       ip_address: 10.127.132.31/25
#
# Seal credential passwords with 'sdnctl secrets seal', then deploy with:
#
#   sdnctl deploy --config %s
`, time.Now().Format("2006-01-02 15:04:05"), outputPath)
}

func defaultConfirmOverwrite(path string) (bool, error) {
	fmt.Printf("%s already exists. Overwrite? [y/N]: ", path)
	var answer string
	if _, err := fmt.Scanln(&answer); err != nil {
		return false, nil
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
