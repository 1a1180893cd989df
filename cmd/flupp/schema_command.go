package main

import (
	"reflect"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"flupp/internal/flupp"
)

var (
	dateType      = reflect.TypeOf(flupp.Date{})
	timeOfDayType = reflect.TypeOf(flupp.TimeOfDay{})
	durationType  = reflect.TypeOf(time.Duration(0))
)

// documentSchema describes the JSON printed by `parse --json`.
func documentSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t {
			case dateType:
				return &jsonschema.Schema{Type: "string", Format: "date"}
			case timeOfDayType:
				return &jsonschema.Schema{Type: "string", Pattern: `^\d{2}:\d{2}:\d{2}$`}
			case durationType:
				return &jsonschema.Schema{Type: "integer", Description: "duration in nanoseconds"}
			}
			return nil
		},
	}
	schema := r.Reflect(&flupp.Document{})
	schema.Title = "FluPP logbook"
	return schema
}

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "schema",
		Short:       "Print the JSON Schema of decoded logbooks",
		Args:        cobra.NoArgs,
		Annotations: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd, documentSchema())
		},
	}
}
