package repair

import (
	"os"
	"testing"

	"github.com/composersite/catalog/internal/tester"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()
	tester.RemoveDBFile()

	os.Exit(code)
}
