package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/jobfeed/internal/model"
)

func TestReadOnlyStore_DelegatesLoadDiscardsSave(t *testing.T) {
	inner := newJSONStore(t)
	require.NoError(t, inner.Save(model.NewSeenSet("existing")))

	ro := NewReadOnlyStore(inner, discardLogger())
	assert.Equal(t, model.NewSeenSet("existing"), ro.Load())

	require.NoError(t, ro.Save(model.NewSeenSet("existing", "new")))
	assert.Equal(t, model.NewSeenSet("existing"), inner.Load(), "inner store must be untouched")

}
