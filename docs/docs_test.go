package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerDoc_ProductWritesDescribeAlertTiming(t *testing.T) {
	var doc struct {
		BasePath string `json:"basePath"`
		Paths    map[string]map[string]struct {
			Description string `json:"description"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	assert.Equal(t, "/api", doc.BasePath)
	for _, op := range []struct{ path, method string }{
		{"/products", "post"},
		{"/products/{id}", "put"},
		{"/products/{id}/quantity", "patch"},
	} {
		assert.Contains(t, doc.Paths[op.path][op.method].Description, "next scheduled check", op.method+" "+op.path)
	}
}
