package api_test

import (
	"context"
	"encoding/json"
	"testing"

	"dispatch/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestLoad(t *testing.T) {
	doc, err := api.Load(context.Background())
	require.NoError(t, err)

	for _, path := range []string{
		"/health",
		"/jobs",
		"/jobs/{id}",
		"/jobs/{id}/assign-nearest",
		"/cleaner/online",
		"/cleaners/online",
		"/waitlist/customer",
		"/waitlist/cleaner",
	} {
		assert.NotNil(t, doc.Paths.Find(path), "missing path %s", path)
	}
}

func TestJSONAndRegister(t *testing.T) {
	doc, err := api.Load(context.Background())
	require.NoError(t, err)

	out, err := api.JSON(doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "3.0.3", decoded["openapi"])

	api.Register(out)
	api.Register(out)

	served, err := swag.ReadDoc()
	require.NoError(t, err)
	assert.JSONEq(t, string(out), served)
}
