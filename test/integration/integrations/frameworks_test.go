package integrations

import (
	"strings"
	"testing"

	"github.com/PolarWolf314/tether/test/integration/shared"
)

func TestIntegrationsFrameworks(t *testing.T) {
	shared.SetupTestEnvironment(t)

	output, err := shared.Run("integrations", "frameworks")
	if err != nil {
		t.Fatalf("Command failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Framework integrations") || !strings.Contains(output, "<https://") {
		t.Errorf("Unexpected output: %s", output)
	}
}
