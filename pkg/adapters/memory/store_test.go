package memory_test

import (
	"testing"

	"github.com/akwaba/ussdflow/pkg/adapters/memory"
	"github.com/akwaba/ussdflow/pkg/ports/portstest"
)

func TestMemoryStore_Contract(t *testing.T) {
	portstest.RunSessionStoreContract(t, memory.NewStore())
}
