package docs

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type swaggerDoc struct {
	Swagger string `json:"swagger"`
	Info    struct {
		Title   string `json:"title"`
		Version string `json:"version"`
	} `json:"info"`
	BasePath    string                    `json:"basePath"`
	Paths       map[string]map[string]any `json:"paths"`
	Definitions map[string]any            `json:"definitions"`
}

func TestSwaggerDoc_Registered(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "Dev Events API", doc.Info.Title)
	assert.Equal(t, "/", doc.BasePath)
	assert.Contains(t, doc.Paths["/api/dev-events/{id}"], "delete")
	assert.Contains(t, doc.Paths, "/api/dev-events/{id}/speakers/import/sessionize/{sessionizeID}")

	file, err := os.ReadFile("swagger.json")
	require.NoError(t, err)
	var fromFile swaggerDoc
	require.NoError(t, json.Unmarshal(file, &fromFile))
	assert.Equal(t, doc, fromFile)
}
