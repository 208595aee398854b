package bridge

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"

	"github.com/CodexForgeBR/daedalus/internal/clean"
	"github.com/CodexForgeBR/daedalus/internal/deps"
	"github.com/CodexForgeBR/daedalus/internal/project"
)

// Command describes the request and response shapes of one bridge route.
type Command struct {
	Route    string             `json:"route"`
	Request  *jsonschema.Schema `json:"request,omitempty"`
	Response *jsonschema.Schema `json:"response"`
}

// Commands returns the schema of every invocable command, keyed by name.
func Commands() map[string]Command {
	r := jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true}
	return map[string]Command{
		"greet": {
			Route:    "/api/invoke/greet",
			Request:  r.Reflect(&GreetRequest{}),
			Response: &jsonschema.Schema{Type: "string"},
		},
		"check_dependencies": {
			Route:    "/api/invoke/check_dependencies",
			Response: r.Reflect(&deps.DependencyStatus{}),
		},
		"clean_project": {
			Route:    "/api/invoke/clean_project",
			Request:  r.Reflect(&CleanRequest{}),
			Response: r.Reflect(&clean.Report{}),
		},
		"compile": {
			Route:    "/api/invoke/compile",
			Request:  r.Reflect(&ProjectRequest{}),
			Response: r.Reflect(&RunResponse{}),
		},
		"simulate": {
			Route:    "/api/invoke/simulate",
			Request:  r.Reflect(&ProjectRequest{}),
			Response: r.Reflect(&RunResponse{}),
		},
		"view_waveform": {
			Route:    "/api/invoke/view_waveform",
			Request:  r.Reflect(&ProjectRequest{}),
			Response: startedSchema(),
		},
		"project_open": {
			Route:    "/api/project/open",
			Request:  r.Reflect(&OpenRequest{}),
			Response: r.Reflect(&project.Settings{}),
		},
		"project_save": {
			Route:    "/api/project/save",
			Request:  r.Reflect(&SaveRequest{}),
			Response: &jsonschema.Schema{Type: "object"},
		},
	}
}

// MarshalSchema indents the command schemas to JSON bytes.
func MarshalSchema() ([]byte, error) {
	return json.MarshalIndent(Commands(), "", "  ")
}

func startedSchema() *jsonschema.Schema {
	props := jsonschema.NewProperties()
	props.Set("started", &jsonschema.Schema{Type: "boolean"})
	return &jsonschema.Schema{Type: "object", Properties: props, Required: []string{"started"}}
}

func schemaHandler(c *gin.Context) {
	c.JSON(http.StatusOK, Commands())
}
