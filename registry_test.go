package karst

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	td := personDescriptor()

	require.NoError(t, r.Register(td))

	got, ok := r.Lookup("example.com/model.Person")
	require.True(t, ok)
	assert.Same(t, td, got)

	_, ok = r.Lookup("example.com/model.Missing")
	assert.False(t, ok)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(personDescriptor()))

	err := r.Register(personDescriptor())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registered twice")
}

func TestRegistryRejectsAnonymousDescriptors(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(&TypeDescriptor{Name: "NoQualified"}))
}

func TestRegistryTypesSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"c.C", "a.A", "b.B"} {
		require.NoError(t, r.Register(&TypeDescriptor{Name: name, Qualified: name}))
	}

	types := r.Types()
	require.Len(t, types, 3)
	assert.Equal(t, "a.A", types[0].Qualified)
	assert.Equal(t, "b.B", types[1].Qualified)
	assert.Equal(t, "c.C", types[2].Qualified)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			q := fmt.Sprintf("pkg.T%d", i)
			_ = r.Register(&TypeDescriptor{Name: q, Qualified: q})
			r.Lookup(q)
			r.Types()
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	assert.Len(t, r.Types(), 8)
}
